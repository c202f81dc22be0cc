package domain

import "time"

// Estilos de colaboracion detectados por el quiz.
const (
	StyleLeader       = "leader"
	StyleCollaborator = "collaborator"
	StyleSupporter    = "supporter"
	StyleIndependent  = "independent"
)

// Preferencias de comunicacion.
const (
	CommDirect     = "direct"
	CommDiplomatic = "diplomatic"
	CommCasual     = "casual"
	CommFormal     = "formal"
)

// Ritmos de trabajo y estilos de feedback (complementan el perfil, no puntuan).
const (
	PaceFast       = "fast"
	PaceModerate   = "moderate"
	PaceDeliberate = "deliberate"

	FeedbackFrequent  = "frequent"
	FeedbackMilestone = "milestone"
	FeedbackMinimal   = "minimal"
)

// TraitProfile es el perfil de personalidad de un creador.
// Las siete dimensiones numericas van en escala 0-100; Confidence en 0-1
// indica cuanta evidencia (quizzes respondidos) respalda los valores.
type TraitProfile struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`

	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`

	CreativityIndex float64 `json:"creativity_index"`
	RiskTolerance   float64 `json:"risk_tolerance"`

	CollaborationStyle      string `json:"collaboration_style"`
	CommunicationPreference string `json:"communication_preference"`
	WorkPace                string `json:"work_pace"`
	FeedbackStyle           string `json:"feedback_style"`

	Confidence float64   `json:"confidence"`
	UpdatedAt  time.Time `json:"updated_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// DefaultTraitProfile devuelve el perfil por defecto para un creador sin quiz.
// Los valores base asumen un sesgo creativo: apertura y creatividad altas,
// neuroticismo algo bajo.
func DefaultTraitProfile(profileID string) TraitProfile {
	now := time.Now().UTC()
	return TraitProfile{
		ProfileID:               profileID,
		Openness:                60,
		Conscientiousness:       55,
		Extraversion:            50,
		Agreeableness:           60,
		Neuroticism:             45,
		CreativityIndex:         70,
		RiskTolerance:           60,
		CollaborationStyle:      StyleCollaborator,
		CommunicationPreference: CommCasual,
		WorkPace:                PaceModerate,
		FeedbackStyle:           FeedbackMilestone,
		Confidence:              0.5,
		UpdatedAt:               now,
		CreatedAt:               now,
	}
}

// Clamp fuerza todos los campos numericos a su rango declarado.
func (t *TraitProfile) Clamp() {
	t.Openness = clamp100(t.Openness)
	t.Conscientiousness = clamp100(t.Conscientiousness)
	t.Extraversion = clamp100(t.Extraversion)
	t.Agreeableness = clamp100(t.Agreeableness)
	t.Neuroticism = clamp100(t.Neuroticism)
	t.CreativityIndex = clamp100(t.CreativityIndex)
	t.RiskTolerance = clamp100(t.RiskTolerance)
	t.Confidence = clamp01(t.Confidence)
}

// TraitVector devuelve las siete dimensiones en orden fijo, listo para
// persistir como vector de compatibilidad.
func (t TraitProfile) TraitVector() []float32 {
	return []float32{
		float32(t.Openness),
		float32(t.Conscientiousness),
		float32(t.Extraversion),
		float32(t.Agreeableness),
		float32(t.Neuroticism),
		float32(t.CreativityIndex),
		float32(t.RiskTolerance),
	}
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
