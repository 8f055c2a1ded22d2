package fixtures

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/delfos/internal/adapters/artifact"
	"github.com/okian/delfos/internal/domain/aptitude"
	"github.com/okian/delfos/internal/domain/normalize"
	"github.com/okian/delfos/pkg/logger"
)

// ErrVerify is wrapped by every consistency violation.
var ErrVerify = errors.New("artifact verification failed")

// Report summarizes a verified artifact.
type Report struct {
	Professions int
	Elements    int
	Scores      int
}

// VerifyFile reads and verifies the artifact at path.
func VerifyFile(ctx context.Context, path string) (*Report, error) {
	a, err := artifact.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Verify(ctx, a)
}

// Verify checks the invariants every derived artifact must hold and returns
// all violations joined.
func Verify(ctx context.Context, a *artifact.Artifact) (*Report, error) {
	var (
		problems []error
		report   Report
	)
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf("%w: "+format, append([]any{ErrVerify}, args...)...))
	}

	for _, id := range a.ProfessionIDs() {
		req := a.Professions[id]
		detail, ok := a.Data[id]
		if !ok {
			fail("%s: requirement without audit detail", id)
			continue
		}
		report.Professions++
		report.Elements += len(detail.Elements)
		report.Scores += len(req.Req)

		if req.Meta.TotalElements != len(detail.Elements) {
			fail("%s: totalElements %d but %d element matches", id, req.Meta.TotalElements, len(detail.Elements))
		}

		count := 0
		for _, b := range detail.Raw {
			count += b.Count
		}
		if count != len(detail.Elements) {
			fail("%s: bucket counts sum to %d but %d element matches", id, count, len(detail.Elements))
		}

		for apt, v := range req.Req {
			if !aptitude.Valid(apt) {
				fail("%s: unknown aptitude %q", id, apt)
			}
			if v <= 0 || v > 1 {
				fail("%s.%s: score %v outside (0,1]", id, apt, v)
			}
		}
		for apt, v := range detail.Normalized {
			if v < 0 || v > 1 {
				fail("%s.%s: normalized %v outside [0,1]", id, apt, v)
			}
			if got, want := req.Req[apt], v; want > 0 && got != want {
				fail("%s.%s: req %v differs from normalized %v", id, apt, got, want)
			}
		}
		if len(req.Req) != len(normalize.Sparse(detail.Normalized)) {
			fail("%s: req has %d scores, normalized has %d positive", id, len(req.Req), len(normalize.Sparse(detail.Normalized)))
		}
	}

	for apt, maxAvg := range a.GlobalMaxPerAptitude {
		top := 0.0
		for _, d := range a.Data {
			if v := d.Normalized[apt]; v > top {
				top = v
			}
		}
		switch {
		case maxAvg > 0 && top != 1:
			fail("%s: global max %v but best normalized score is %v", apt, maxAvg, top)
		case maxAvg <= 0 && top != 0:
			fail("%s: global max is zero but a profession scores %v", apt, top)
		}
	}

	if err := errors.Join(problems...); err != nil {
		logger.Get().Warn(ctx, "artifact failed verification", logger.Int("violations", len(problems)))
		return &report, err
	}

	logger.Get().Info(ctx, "artifact verified",
		logger.Int("professions", report.Professions),
		logger.Int("elements", report.Elements),
		logger.Int("scores", report.Scores),
	)
	return &report, nil
}
