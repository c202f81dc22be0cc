package domain

// Categorias de disciplinas creativas soportadas por la plataforma.
const (
	CategoryVisualArts     = "visual_arts"
	CategoryPerformingArts = "performing_arts"
	CategoryLiteraryArts   = "literary_arts"
	CategoryDesign         = "design"
	CategoryDigitalArts    = "digital_arts"
	CategoryCrafts         = "crafts"
	CategoryMediaArts      = "media_arts"
	CategoryCulinaryArts   = "culinary_arts"
	CategoryArchitecture   = "architecture"
)

// ExperienceLevel es el nivel de experiencia de un creador, ordenado.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceProfessional ExperienceLevel = "professional"
)

var experienceRanks = map[ExperienceLevel]int{
	ExperienceBeginner:     1,
	ExperienceIntermediate: 2,
	ExperienceAdvanced:     3,
	ExperienceProfessional: 4,
}

// Rank devuelve la posicion ordinal del nivel; los niveles desconocidos
// se tratan como intermediate.
func (e ExperienceLevel) Rank() int {
	if r, ok := experienceRanks[e]; ok {
		return r
	}
	return 2
}

// CandidateProfile es una proyeccion de solo lectura de otro perfil,
// usada unicamente como entrada de scoring. El perfil pertenece al store
// de perfiles, no a este motor.
type CandidateProfile struct {
	ID              string          `json:"id"`
	DisplayName     string          `json:"display_name"`
	Category        string          `json:"category"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	IsValidated     bool            `json:"is_validated"`
	IsActive        bool            `json:"is_active"`
	PortfolioCount  int             `json:"portfolio_count"`
	ContactEmail    string          `json:"-"`
}

// ComplementaryCategories devuelve las categorias que complementan a la dada.
// Tabla estatica de afinidad entre disciplinas.
func ComplementaryCategories(category string) []string {
	complementary := map[string][]string{
		CategoryVisualArts:     {CategoryPerformingArts, CategoryMediaArts, CategoryLiteraryArts},
		CategoryPerformingArts: {CategoryVisualArts, CategoryMediaArts, CategoryDigitalArts},
		CategoryLiteraryArts:   {CategoryVisualArts, CategoryMediaArts, CategoryPerformingArts},
		CategoryDesign:         {CategoryDigitalArts, CategoryVisualArts, CategoryMediaArts},
		CategoryDigitalArts:    {CategoryDesign, CategoryVisualArts, CategoryPerformingArts},
		CategoryCrafts:         {CategoryDesign, CategoryVisualArts, CategoryMediaArts},
		CategoryMediaArts:      {CategoryVisualArts, CategoryPerformingArts, CategoryDigitalArts},
		CategoryCulinaryArts:   {CategoryMediaArts, CategoryVisualArts, CategoryDesign},
		CategoryArchitecture:   {CategoryDesign, CategoryVisualArts, CategoryDigitalArts},
	}
	if cats, ok := complementary[category]; ok {
		return cats
	}
	return []string{CategoryVisualArts, CategoryPerformingArts, CategoryMediaArts}
}
