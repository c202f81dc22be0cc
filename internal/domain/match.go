package domain

import (
	"strings"
	"time"
)

// MatchStatus es el estado por lado de un MatchRecord.
type MatchStatus string

const (
	MatchPending MatchStatus = "pending"
	MatchViewed  MatchStatus = "viewed"
	MatchLiked   MatchStatus = "liked"
	MatchPassed  MatchStatus = "passed"
	MatchMatched MatchStatus = "matched"
)

// MatchAction es la respuesta de un participante a una sugerencia.
type MatchAction string

const (
	ActionLike MatchAction = "like"
	ActionPass MatchAction = "pass"
)

// PairKey construye la clave canonica no ordenada de un par de perfiles:
// los dos ids ordenados lexicograficamente y unidos por ":". Garantiza un
// solo registro por par sin importar la direccion de la solicitud.
func PairKey(a, b string) string {
	lo, hi := a, b
	if strings.Compare(lo, hi) > 0 {
		lo, hi = hi, lo
	}
	return lo + ":" + hi
}

// OrderPair devuelve el par en orden canonico (profile_a < profile_b).
func OrderPair(a, b string) (string, string) {
	if strings.Compare(a, b) > 0 {
		return b, a
	}
	return a, b
}

// MatchRecord representa una propuesta de colaboracion entre exactamente
// dos perfiles, identificada por su clave de par no ordenada. ProfileA y
// ProfileB estan siempre en orden canonico.
type MatchRecord struct {
	ID       string `json:"id"`
	PairKey  string `json:"pair_key"`
	ProfileA string `json:"profile_a"`
	ProfileB string `json:"profile_b"`

	CompatibilityScore float64 `json:"compatibility_score"`
	PersonalityScore   float64 `json:"personality_score"`
	SkillScore         float64 `json:"skill_score"`
	ExperienceScore    float64 `json:"experience_score"`

	Explanation    string   `json:"explanation"`
	SuggestedTypes []string `json:"suggested_types"`

	StatusA MatchStatus `json:"status_a"`
	StatusB MatchStatus `json:"status_b"`

	CreatedAt time.Time  `json:"created_at"`
	ViewedAtA *time.Time `json:"viewed_at_a,omitempty"`
	ViewedAtB *time.Time `json:"viewed_at_b,omitempty"`
	MatchedAt *time.Time `json:"matched_at,omitempty"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// SideOf indica si el perfil es el lado A o B del registro.
// Devuelve false si el perfil no participa en el match.
func (m MatchRecord) SideOf(profileID string) (isA bool, ok bool) {
	switch profileID {
	case m.ProfileA:
		return true, true
	case m.ProfileB:
		return false, true
	default:
		return false, false
	}
}

// StatusFor devuelve el estado del lado correspondiente al perfil.
func (m MatchRecord) StatusFor(profileID string) (MatchStatus, bool) {
	isA, ok := m.SideOf(profileID)
	if !ok {
		return "", false
	}
	if isA {
		return m.StatusA, true
	}
	return m.StatusB, true
}

// IsMutual indica si ambos lados llegaron a liked (o ya quedaron matched).
func (m MatchRecord) IsMutual() bool {
	if m.StatusA == MatchMatched && m.StatusB == MatchMatched {
		return true
	}
	return m.StatusA == MatchLiked && m.StatusB == MatchLiked
}

// ApplyRespond registra like o pass del lado indicado. Un lado ya resuelto
// (liked, passed o matched) no cambia: applied queda en false y el registro
// intacto. Si con la accion ambos lados quedan liked, los dos pasan a
// matched y se estampa MatchedAt; matched es terminal. mutual refleja el
// estado resultante, tambien en el camino no-op.
func (m *MatchRecord) ApplyRespond(isA bool, action MatchAction, now time.Time) (applied, mutual bool) {
	side := m.StatusA
	if !isA {
		side = m.StatusB
	}
	if side == MatchLiked || side == MatchPassed || side == MatchMatched {
		return false, m.StatusA == MatchMatched
	}

	newStatus := MatchLiked
	if action == ActionPass {
		newStatus = MatchPassed
	}
	if isA {
		m.StatusA = newStatus
		if m.ViewedAtA == nil {
			m.ViewedAtA = &now
		}
	} else {
		m.StatusB = newStatus
		if m.ViewedAtB == nil {
			m.ViewedAtB = &now
		}
	}

	if m.StatusA == MatchLiked && m.StatusB == MatchLiked {
		m.StatusA = MatchMatched
		m.StatusB = MatchMatched
		m.MatchedAt = &now
		return true, true
	}
	return true, false
}

// IsResolved indica si alguno de los lados cerro la sugerencia.
func (m MatchRecord) IsResolved() bool {
	return m.StatusA == MatchMatched || m.StatusB == MatchMatched ||
		m.StatusA == MatchPassed || m.StatusB == MatchPassed
}

// IsExpired indica si la sugerencia vencio sin resolverse.
func (m MatchRecord) IsExpired(now time.Time) bool {
	return !m.IsResolved() && now.After(m.ExpiresAt)
}

// OtherProfile devuelve el id del otro participante.
func (m MatchRecord) OtherProfile(profileID string) string {
	if profileID == m.ProfileA {
		return m.ProfileB
	}
	return m.ProfileA
}
