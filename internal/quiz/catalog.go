// Package quiz holds the static "Build Your Day" assessment content and the
// scoring engine that turns a batch of answers into a trait vector.
package quiz

import "lehrmatch/internal/domain"

// Tile is one selectable activity in a grid phase.
type Tile struct {
	ID     string                 `json:"id"`
	Label  string                 `json:"label"`
	Scores domain.DimensionScores `json:"-"`
}

// ScenarioOption is one answer choice of a scenario question.
type ScenarioOption struct {
	Text   string                 `json:"text"`
	Scores domain.DimensionScores `json:"-"`
}

// ScenarioQuestion is one phase-three question with four options.
type ScenarioQuestion struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Options []ScenarioOption `json:"options"`
}

// Catalog is the full quiz content: two 16-tile grids and ten scenario
// questions. Content is hand-authored configuration, not computed.
type Catalog struct {
	MorningTiles      []Tile
	AfternoonTiles    []Tile
	ScenarioQuestions []ScenarioQuestion

	tilesByID     map[string]Tile
	questionsByID map[string]ScenarioQuestion
}

// NewCatalog returns the built-in content catalog with lookup indexes.
func NewCatalog() *Catalog {
	c := &Catalog{
		MorningTiles:      morningTiles,
		AfternoonTiles:    afternoonTiles,
		ScenarioQuestions: scenarioQuestions,
		tilesByID:         make(map[string]Tile, len(morningTiles)+len(afternoonTiles)),
		questionsByID:     make(map[string]ScenarioQuestion, len(scenarioQuestions)),
	}
	for _, t := range morningTiles {
		c.tilesByID[t.ID] = t
	}
	for _, t := range afternoonTiles {
		c.tilesByID[t.ID] = t
	}
	for _, q := range scenarioQuestions {
		c.questionsByID[q.ID] = q
	}
	return c
}

// TileByID looks up a grid tile in either grid phase.
func (c *Catalog) TileByID(id string) (Tile, bool) {
	t, ok := c.tilesByID[id]
	return t, ok
}

// QuestionByID looks up a scenario question.
func (c *Catalog) QuestionByID(id string) (ScenarioQuestion, bool) {
	q, ok := c.questionsByID[id]
	return q, ok
}

// Phase 1: morning activity tiles.
var morningTiles = []Tile{
	{ID: "m01", Label: "Maschine bedienen", Scores: domain.DimensionScores{Realistic: 1.0, Investigative: 0.3}},
	{ID: "m02", Label: "Holz bearbeiten", Scores: domain.DimensionScores{Realistic: 1.0, Artistic: 0.3}},
	{ID: "m03", Label: "Code schreiben", Scores: domain.DimensionScores{Investigative: 1.0, Realistic: 0.3}},
	{ID: "m04", Label: "Experimente machen", Scores: domain.DimensionScores{Investigative: 1.0}},
	{ID: "m05", Label: "Logo gestalten", Scores: domain.DimensionScores{Artistic: 1.0, Enterprising: 0.3}},
	{ID: "m06", Label: "Musik / Video produzieren", Scores: domain.DimensionScores{Artistic: 1.0}},
	{ID: "m07", Label: "Patienten betreuen", Scores: domain.DimensionScores{Social: 1.0}},
	{ID: "m08", Label: "Kinder unterrichten", Scores: domain.DimensionScores{Social: 1.0, Artistic: 0.3}},
	{ID: "m09", Label: "Kunden beraten", Scores: domain.DimensionScores{Social: 0.8, Enterprising: 0.5}},
	{ID: "m10", Label: "Team leiten", Scores: domain.DimensionScores{Enterprising: 1.0, Social: 0.3}},
	{ID: "m11", Label: "Produkte verkaufen", Scores: domain.DimensionScores{Enterprising: 1.0}},
	{ID: "m12", Label: "Daten ordnen", Scores: domain.DimensionScores{Conventional: 1.0, Investigative: 0.3}},
	{ID: "m13", Label: "Büro organisieren", Scores: domain.DimensionScores{Conventional: 1.0}},
	{ID: "m14", Label: "Elektrisch installieren", Scores: domain.DimensionScores{Realistic: 0.8, Investigative: 0.5}},
	{ID: "m15", Label: "Texte schreiben", Scores: domain.DimensionScores{Artistic: 0.5, Conventional: 0.5}},
	{ID: "m16", Label: "Projekte planen", Scores: domain.DimensionScores{Enterprising: 0.5, Conventional: 0.5}},
}

// Phase 2: afternoon environment tiles.
var afternoonTiles = []Tile{
	{ID: "a01", Label: "Draussen arbeiten", Scores: domain.DimensionScores{Realistic: 1.0}},
	{ID: "a02", Label: "In der Werkstatt", Scores: domain.DimensionScores{Realistic: 1.0}},
	{ID: "a03", Label: "Im Labor / Techraum", Scores: domain.DimensionScores{Investigative: 1.0}},
	{ID: "a04", Label: "Probleme analysieren", Scores: domain.DimensionScores{Investigative: 1.0, Conventional: 0.3}},
	{ID: "a05", Label: "Im Atelier / Studio", Scores: domain.DimensionScores{Artistic: 1.0}},
	{ID: "a06", Label: "Auf der Bühne / vor Kamera", Scores: domain.DimensionScores{Artistic: 0.8, Enterprising: 0.5}},
	{ID: "a07", Label: "Im Spital / Praxis", Scores: domain.DimensionScores{Social: 1.0}},
	{ID: "a08", Label: "Menschen zuhören", Scores: domain.DimensionScores{Social: 1.0}},
	{ID: "a09", Label: "Verhandlungen führen", Scores: domain.DimensionScores{Enterprising: 1.0}},
	{ID: "a10", Label: "Präsentationen halten", Scores: domain.DimensionScores{Enterprising: 0.8, Artistic: 0.3}},
	{ID: "a11", Label: "Listen und Tabellen führen", Scores: domain.DimensionScores{Conventional: 1.0}},
	{ID: "a12", Label: "Abläufe kontrollieren", Scores: domain.DimensionScores{Conventional: 1.0}},
	{ID: "a13", Label: "Körperlich aktiv sein", Scores: domain.DimensionScores{Realistic: 0.8, Social: 0.3}},
	{ID: "a14", Label: "Mit Zahlen arbeiten", Scores: domain.DimensionScores{Investigative: 0.5, Conventional: 0.5}},
	{ID: "a15", Label: "Events organisieren", Scores: domain.DimensionScores{Enterprising: 0.5, Social: 0.5}},
	{ID: "a16", Label: "Tiere / Pflanzen pflegen", Scores: domain.DimensionScores{Realistic: 0.7, Social: 0.3}},
}

// Phase 3: scenario questions.
var scenarioQuestions = []ScenarioQuestion{
	{
		ID:   "s01",
		Text: "Dein Kollege hat Stress mit einer Aufgabe. Was machst du?",
		Options: []ScenarioOption{
			{Text: "Ich helfe sofort mit", Scores: domain.DimensionScores{Social: 1.0, Teamwork: 0.8}},
			{Text: "Ich zeige einen effizienteren Weg", Scores: domain.DimensionScores{Investigative: 0.8, Independence: 0.5}},
			{Text: "Ich motiviere und muntere auf", Scores: domain.DimensionScores{Enterprising: 0.8, Social: 0.5}},
			{Text: "Ich mache mein eigenes Ding weiter", Scores: domain.DimensionScores{Conventional: 0.5, Independence: 1.0}},
		},
	},
	{
		ID:   "s02",
		Text: "Dein Traum-Arbeitsweg sieht so aus:",
		Options: []ScenarioOption{
			{Text: "Mit dem Velo zur Baustelle", Scores: domain.DimensionScores{Realistic: 1.0, PhysicalActivity: 0.8}},
			{Text: "Zu Fuss ins Büro in der Stadt", Scores: domain.DimensionScores{Conventional: 0.5, Stability: 0.8}},
			{Text: "Homeoffice, Laptop auf", Scores: domain.DimensionScores{Investigative: 0.8, Independence: 0.8}},
			{Text: "Egal, Hauptsache mit coolen Leuten", Scores: domain.DimensionScores{Social: 0.8, Teamwork: 1.0}},
		},
	},
	{
		ID:   "s03",
		Text: "Du gewinnst 1000 CHF. Was machst du?",
		Options: []ScenarioOption{
			{Text: "Neues Werkzeug oder Gadget kaufen", Scores: domain.DimensionScores{Realistic: 0.8, Technology: 0.8}},
			{Text: "In einen Online-Kurs investieren", Scores: domain.DimensionScores{Investigative: 1.0, Independence: 0.5}},
			{Text: "Ein kreatives Projekt starten", Scores: domain.DimensionScores{Artistic: 1.0, Creativity: 1.0}},
			{Text: "Etwas mit Freunden unternehmen", Scores: domain.DimensionScores{Social: 0.8, Teamwork: 0.5}},
		},
	},
	{
		ID:   "s04",
		Text: "Welchen Social-Media-Kanal würdest du am liebsten betreiben?",
		Options: []ScenarioOption{
			{Text: "DIY / Handwerk Tutorials", Scores: domain.DimensionScores{Realistic: 0.8, Creativity: 0.5}},
			{Text: "Tech Reviews / Science Content", Scores: domain.DimensionScores{Investigative: 1.0, Technology: 0.8}},
			{Text: "Design / Art / Fotografie", Scores: domain.DimensionScores{Artistic: 1.0, Creativity: 1.0}},
			{Text: "Lifestyle / People / Vlogs", Scores: domain.DimensionScores{Social: 0.5, Enterprising: 0.5, HelpingOthers: 0.5}},
		},
	},
	{
		ID:   "s05",
		Text: "Was nervt dich am meisten?",
		Options: []ScenarioOption{
			{Text: "Den ganzen Tag stillsitzen", Scores: domain.DimensionScores{Realistic: 1.0, PhysicalActivity: 1.0, Variety: 0.5}},
			{Text: "Immer das Gleiche machen", Scores: domain.DimensionScores{Artistic: 0.5, Enterprising: 0.5, Variety: 1.0}},
			{Text: "Alleine arbeiten ohne Teamkontakt", Scores: domain.DimensionScores{Social: 1.0, Teamwork: 1.0}},
			{Text: "Chaos ohne klare Struktur", Scores: domain.DimensionScores{Conventional: 1.0, Stability: 1.0}},
		},
	},
	{
		ID:   "s06",
		Text: "Ein neues Schulprojekt steht an. Du übernimmst am liebsten:",
		Options: []ScenarioOption{
			{Text: "Den praktischen Teil (bauen, basteln)", Scores: domain.DimensionScores{Realistic: 1.0, Independence: 0.5}},
			{Text: "Die Recherche und Analyse", Scores: domain.DimensionScores{Investigative: 1.0, Independence: 0.8}},
			{Text: "Das Design und die Gestaltung", Scores: domain.DimensionScores{Artistic: 1.0, Creativity: 1.0}},
			{Text: "Die Koordination im Team", Scores: domain.DimensionScores{Enterprising: 0.8, Teamwork: 0.8}},
		},
	},
	{
		ID:   "s07",
		Text: "Stell dir vor, du könntest ein Problem der Welt lösen. Welches?",
		Options: []ScenarioOption{
			{Text: "Kaputte Infrastruktur reparieren", Scores: domain.DimensionScores{Realistic: 1.0, HelpingOthers: 0.5}},
			{Text: "Eine Krankheit heilen", Scores: domain.DimensionScores{Investigative: 0.8, Social: 0.5, HelpingOthers: 1.0}},
			{Text: "Mehr Zugang zu Kunst und Kultur", Scores: domain.DimensionScores{Artistic: 1.0, HelpingOthers: 0.8}},
			{Text: "Einsamkeit bekämpfen", Scores: domain.DimensionScores{Social: 1.0, HelpingOthers: 1.0}},
		},
	},
	{
		ID:   "s08",
		Text: "Wie lernst du am besten?",
		Options: []ScenarioOption{
			{Text: "Learning by Doing — einfach ausprobieren", Scores: domain.DimensionScores{Realistic: 1.0, Independence: 0.5}},
			{Text: "Selber recherchieren und lesen", Scores: domain.DimensionScores{Investigative: 1.0, Independence: 1.0}},
			{Text: "Notizen skizzieren oder Mindmaps machen", Scores: domain.DimensionScores{Artistic: 0.8, Creativity: 0.5}},
			{Text: "Im Gespräch mit anderen", Scores: domain.DimensionScores{Social: 1.0, Teamwork: 0.8}},
		},
	},
	{
		ID:   "s09",
		Text: "Dein Chef sagt: «Mach einfach, wie du willst.» Wie reagierst du?",
		Options: []ScenarioOption{
			{Text: "Super, ich lege direkt los!", Scores: domain.DimensionScores{Realistic: 0.5, Enterprising: 0.5, Independence: 1.0}},
			{Text: "Ich mache erstmal einen Plan", Scores: domain.DimensionScores{Conventional: 1.0, Stability: 0.8}},
			{Text: "Ich frage Kollegen, was sie denken", Scores: domain.DimensionScores{Social: 0.8, Teamwork: 1.0}},
			{Text: "Ich probiere was Kreatives aus", Scores: domain.DimensionScores{Artistic: 1.0, Creativity: 1.0}},
		},
	},
	{
		ID:   "s10",
		Text: "In 10 Jahren willst du:",
		Options: []ScenarioOption{
			{Text: "Mein eigenes Unternehmen führen", Scores: domain.DimensionScores{Enterprising: 1.0, Independence: 1.0}},
			{Text: "Expert/in in meinem Fachgebiet sein", Scores: domain.DimensionScores{Investigative: 0.8, Realistic: 0.5, Stability: 0.5}},
			{Text: "Einen Job, der Menschen hilft", Scores: domain.DimensionScores{Social: 1.0, HelpingOthers: 1.0}},
			{Text: "Kreative Projekte verwirklichen", Scores: domain.DimensionScores{Artistic: 1.0, Creativity: 1.0}},
		},
	},
}
