// Package aptitude defines the closed set of aptitude identifiers the quiz
// scores users against. Every downstream structure keys on ID exclusively.
package aptitude

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAptitude is returned when a string does not name a known aptitude.
var ErrUnknownAptitude = errors.New("unknown aptitude")

// ID identifies one aptitude.
type ID string

// The closed aptitude vocabulary.
const (
	Logica           ID = "logica"
	Matematica       ID = "matematica"
	Interpretacao    ID = "interpretacao"
	Escrita          ID = "escrita"
	Espacial         ID = "espacial"
	Detalhes         ID = "detalhes"
	Memoria          ID = "memoria"
	Velocidade       ID = "velocidade"
	Problemas        ID = "problemas"
	Criatividade     ID = "criatividade"
	CoordFina        ID = "coord_fina"
	Artistica        ID = "artistica"
	Musica           ID = "musica"
	Esportes         ID = "esportes"
	Natureza         ID = "natureza"
	Tecnologia       ID = "tecnologia"
	Organizacao      ID = "organizacao"
	Lideranca        ID = "lideranca"
	Didatica         ID = "didatica"
	Empreendedorismo ID = "empreendedorismo"
	Curiosidade      ID = "curiosidade"
	Comunicacao      ID = "comunicacao"
)

// Info carries display names for an aptitude.
type Info struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"nameEn"`
}

var catalog = []Info{
	{Logica, "Raciocínio Lógico", "Logical Reasoning"},
	{Matematica, "Matemática Aplicada", "Applied Mathematics"},
	{Interpretacao, "Interpretação de Texto", "Reading Comprehension"},
	{Escrita, "Escrita Estruturada", "Structured Writing"},
	{Espacial, "Capacidade Espacial", "Spatial Ability"},
	{Detalhes, "Atenção a Detalhes", "Attention to Detail"},
	{Memoria, "Memória de Curto Prazo", "Short-term Memory"},
	{Velocidade, "Velocidade de Processamento", "Processing Speed"},
	{Problemas, "Resolução de Problemas", "Problem Solving"},
	{Criatividade, "Criatividade Prática", "Practical Creativity"},
	{CoordFina, "Coordenação Motora Fina", "Fine Motor Coordination"},
	{Artistica, "Expressão Artística", "Artistic Expression"},
	{Musica, "Música e Ritmo", "Music and Rhythm"},
	{Esportes, "Esportes e Movimento", "Sports and Movement"},
	{Natureza, "Interesse por Natureza", "Interest in Nature"},
	{Tecnologia, "Interesse por Tecnologia", "Interest in Technology"},
	{Organizacao, "Organização e Planejamento", "Organization and Planning"},
	{Lideranca, "Liderança Prática", "Practical Leadership"},
	{Didatica, "Didática e Ensino", "Teaching and Didactics"},
	{Empreendedorismo, "Iniciativa Empreendedora", "Entrepreneurial Initiative"},
	{Curiosidade, "Curiosidade Autodidata", "Self-taught Curiosity"},
	{Comunicacao, "Comunicação Verbal", "Verbal Communication"},
}

var index = func() map[ID]int {
	m := make(map[ID]int, len(catalog))
	for i, info := range catalog {
		m[info.ID] = i
	}
	return m
}()

// All returns every aptitude in catalog order.
func All() []ID {
	ids := make([]ID, len(catalog))
	for i, info := range catalog {
		ids[i] = info.ID
	}
	return ids
}

// Catalog returns a copy of the display-name table.
func Catalog() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// Valid reports whether id belongs to the closed set.
func Valid(id ID) bool {
	_, ok := index[id]
	return ok
}

// Lookup returns display names for id.
func Lookup(id ID) (Info, bool) {
	i, ok := index[id]
	if !ok {
		return Info{}, false
	}
	return catalog[i], true
}

// Parse converts s to an ID, rejecting anything outside the closed set.
func Parse(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if !Valid(id) {
		return "", fmt.Errorf("%w: %q", ErrUnknownAptitude, s)
	}
	return id, nil
}
