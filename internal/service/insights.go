package service

import (
	"fmt"
	"strings"

	"creator-match/internal/domain"
)

// PersonalityInsights es el resumen deterministico derivado del perfil de
// rasgos. No usa el LLM: son reglas sobre umbrales.
type PersonalityInsights struct {
	Summary             string   `json:"personality_summary"`
	Strengths           []string `json:"strengths"`
	CollaborationTips   []string `json:"collaboration_tips"`
	RecommendedPartners []string `json:"recommended_partners"`
	GrowthAreas         []string `json:"growth_areas"`
}

// BuildInsights arma los insights de personalidad a partir de los rasgos.
func BuildInsights(t domain.TraitProfile) PersonalityInsights {
	return PersonalityInsights{
		Summary:             personalitySummary(t),
		Strengths:           identifyStrengths(t),
		CollaborationTips:   collaborationTips(t),
		RecommendedPartners: recommendPartnerTypes(t),
		GrowthAreas:         growthAreas(t),
	}
}

func personalitySummary(t domain.TraitProfile) string {
	var traits []string

	if t.Openness > 70 {
		traits = append(traits, "highly creative and open to new experiences")
	} else if t.Openness > 50 {
		traits = append(traits, "moderately open to new ideas")
	}
	if t.Extraversion > 70 {
		traits = append(traits, "outgoing and energetic")
	} else if t.Extraversion < 30 {
		traits = append(traits, "more introverted and reflective")
	}
	if t.Agreeableness > 70 {
		traits = append(traits, "collaborative and trusting")
	}
	if t.Conscientiousness > 70 {
		traits = append(traits, "organized and reliable")
	}
	if t.CreativityIndex > 80 {
		traits = append(traits, "exceptionally creative")
	}

	if len(traits) == 0 {
		return "Your personality profile is balanced across the creative dimensions."
	}

	head := traits
	if len(head) > 3 {
		head = head[:3]
	}
	summary := fmt.Sprintf("You are %s.", strings.Join(head, ", "))
	if len(traits) > 3 {
		summary += fmt.Sprintf(" You also tend to be %s.", strings.Join(traits[3:], ", "))
	}
	return summary
}

func identifyStrengths(t domain.TraitProfile) []string {
	var strengths []string

	if t.CreativityIndex > 70 {
		strengths = append(strengths, "Strong creative vision and innovation")
	}
	if t.Agreeableness > 70 {
		strengths = append(strengths, "Excellent collaboration and teamwork skills")
	}
	if t.Conscientiousness > 70 {
		strengths = append(strengths, "Reliable project management and organization")
	}
	if t.Openness > 70 {
		strengths = append(strengths, "Adaptability and willingness to experiment")
	}
	if t.Extraversion > 70 {
		strengths = append(strengths, "Strong communication and networking abilities")
	}
	if t.RiskTolerance > 70 {
		strengths = append(strengths, "Courage to take creative risks and try new approaches")
	}

	if len(strengths) > 4 {
		strengths = strengths[:4]
	}
	return strengths
}

func collaborationTips(t domain.TraitProfile) []string {
	var tips []string

	switch t.CommunicationPreference {
	case domain.CommDirect:
		tips = append(tips, "Be clear and straightforward in your communications")
	case domain.CommDiplomatic:
		tips = append(tips, "Use tactful communication to build consensus")
	}

	switch t.WorkPace {
	case domain.PaceFast:
		tips = append(tips, "Set clear deadlines and maintain momentum in projects")
	case domain.PaceDeliberate:
		tips = append(tips, "Allow time for thoughtful planning and iteration")
	}

	switch t.CollaborationStyle {
	case domain.StyleLeader:
		tips = append(tips, "Take initiative in organizing and directing collaborative efforts")
	case domain.StyleSupporter:
		tips = append(tips, "Focus on supporting others' visions while contributing your expertise")
	}

	if t.FeedbackStyle == domain.FeedbackFrequent {
		tips = append(tips, "Schedule regular check-ins and feedback sessions")
	}

	return tips
}

func recommendPartnerTypes(t domain.TraitProfile) []string {
	var recommendations []string

	switch t.CollaborationStyle {
	case domain.StyleLeader:
		recommendations = append(recommendations, "Supportive partners who appreciate clear direction")
	case domain.StyleSupporter:
		recommendations = append(recommendations, "Natural leaders who can guide the creative vision")
	default:
		recommendations = append(recommendations, "Equal collaborators who share decision-making")
	}

	if t.Extraversion > 70 {
		recommendations = append(recommendations, "Partners who enjoy brainstorming and active discussion")
	} else if t.Extraversion < 30 {
		recommendations = append(recommendations, "Partners who work well independently and communicate thoughtfully")
	}

	if t.CreativityIndex > 80 {
		recommendations = append(recommendations, "Partners who can execute and refine creative ideas")
	}

	return recommendations
}

func growthAreas(t domain.TraitProfile) []string {
	var areas []string

	if t.Conscientiousness < 40 {
		areas = append(areas, "Developing stronger project management and organizational skills")
	}
	if t.Agreeableness < 40 {
		areas = append(areas, "Building trust and openness in collaborative relationships")
	}
	if t.RiskTolerance < 30 {
		areas = append(areas, "Experimenting outside your creative comfort zone")
	}
	if t.Neuroticism > 70 {
		areas = append(areas, "Managing creative stress with steadier routines")
	}

	return areas
}
