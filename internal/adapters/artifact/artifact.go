// Package artifact builds and persists the derived aptitude document.
package artifact

import (
	"sort"
	"time"

	"github.com/okian/delfos/internal/adapters/repository"
	"github.com/okian/delfos/internal/domain/aptitude"
	"github.com/okian/delfos/internal/domain/model"
	"github.com/okian/delfos/internal/domain/normalize"
	"github.com/okian/delfos/internal/domain/profession"
)

// Artifact is the document written at the end of a run.
type Artifact struct {
	GeneratedAt          time.Time                          `json:"generatedAt"`
	GlobalMaxPerAptitude map[aptitude.ID]float64            `json:"globalMaxPerAptitude"`
	Aptitudes            []aptitude.Info                    `json:"aptitudes"`
	Data                 map[profession.ID]ProfessionDetail `json:"data"`
	Professions          map[profession.ID]Requirement      `json:"professions_v2_onet"`
}

// ProfessionDetail is the audit view of one profession's aggregation.
type ProfessionDetail struct {
	Raw        map[aptitude.ID]model.Bucket `json:"raw"`
	Avg        map[aptitude.ID]float64      `json:"avg"`
	Normalized map[aptitude.ID]float64      `json:"normalized"`
	Elements   []model.ElementMatch         `json:"elements"`
}

// Requirement is the compact aptitude vector consumers read.
type Requirement struct {
	Req  map[aptitude.ID]float64 `json:"req"`
	Meta Meta                    `json:"meta"`
}

// Meta carries provenance for a Requirement.
type Meta struct {
	TotalElements int `json:"totalElements"`
}

// Build assembles the artifact for professions from the drained aggregation
// state and its normalization.
func Build(generatedAt time.Time, professions []profession.ID, snap repository.Snapshot, res normalize.Result) *Artifact {
	apts := aptitude.All()

	a := &Artifact{
		GeneratedAt:          generatedAt.UTC(),
		GlobalMaxPerAptitude: make(map[aptitude.ID]float64, len(apts)),
		Aptitudes:            aptitude.Catalog(),
		Data:                 make(map[profession.ID]ProfessionDetail, len(professions)),
		Professions:          make(map[profession.ID]Requirement, len(professions)),
	}
	for _, apt := range apts {
		a.GlobalMaxPerAptitude[apt] = res.GlobalMax[apt]
	}

	for _, p := range professions {
		raw := make(map[aptitude.ID]model.Bucket, len(apts))
		avg := make(map[aptitude.ID]float64, len(apts))
		norm := make(map[aptitude.ID]float64, len(apts))
		for _, apt := range apts {
			raw[apt] = snap.Buckets[p][apt]
			avg[apt] = res.Averages[p][apt]
			norm[apt] = res.Normalized[p][apt]
		}

		elements := append([]model.ElementMatch{}, snap.Elements[p]...)

		a.Data[p] = ProfessionDetail{
			Raw:        raw,
			Avg:        avg,
			Normalized: norm,
			Elements:   elements,
		}
		a.Professions[p] = Requirement{
			Req:  normalize.Sparse(norm),
			Meta: Meta{TotalElements: len(elements)},
		}
	}
	return a
}

// ProfessionIDs returns the professions in the artifact in sorted order.
func (a *Artifact) ProfessionIDs() []profession.ID {
	ids := make([]profession.ID, 0, len(a.Professions))
	for id := range a.Professions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Score is one entry of a ranked requirement vector.
type Score struct {
	Aptitude aptitude.ID
	Value    float64
}

// Top returns up to n aptitudes of a profession's requirement vector, highest
// first. Ties are broken by aptitude id.
func (r Requirement) Top(n int) []Score {
	out := make([]Score, 0, len(r.Req))
	for apt, v := range r.Req {
		out = append(out, Score{Aptitude: apt, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Aptitude < out[j].Aptitude
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
