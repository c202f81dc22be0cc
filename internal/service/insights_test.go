package service

import (
	"strings"
	"testing"

	"creator-match/internal/domain"
)

func TestBuildInsights_BalancedProfile(t *testing.T) {
	insights := BuildInsights(domain.TraitProfile{
		Openness:          50,
		Conscientiousness: 50,
		Extraversion:      50,
		Agreeableness:     50,
		Neuroticism:       50,
		CreativityIndex:   50,
		RiskTolerance:     50,
	})

	if !strings.Contains(insights.Summary, "balanced") {
		t.Fatalf("expected balanced summary, got %q", insights.Summary)
	}
	if len(insights.Strengths) != 0 {
		t.Fatalf("expected no standout strengths, got %v", insights.Strengths)
	}
	if len(insights.GrowthAreas) != 0 {
		t.Fatalf("expected no growth areas, got %v", insights.GrowthAreas)
	}
	if len(insights.RecommendedPartners) == 0 {
		t.Fatalf("expected default partner recommendation")
	}
}

func TestBuildInsights_HighProfileCapsStrengths(t *testing.T) {
	insights := BuildInsights(domain.TraitProfile{
		Openness:          90,
		Conscientiousness: 90,
		Extraversion:      90,
		Agreeableness:     90,
		Neuroticism:       20,
		CreativityIndex:   90,
		RiskTolerance:     90,
	})

	if len(insights.Strengths) != 4 {
		t.Fatalf("expected strengths capped at 4, got %d", len(insights.Strengths))
	}
	if !strings.Contains(insights.Summary, "You are ") {
		t.Fatalf("expected trait summary, got %q", insights.Summary)
	}
	// Mas de tres rasgos destacados parten el resumen en dos oraciones.
	if !strings.Contains(insights.Summary, "You also tend to be ") {
		t.Fatalf("expected overflow sentence, got %q", insights.Summary)
	}
}

func TestBuildInsights_GrowthAreas(t *testing.T) {
	insights := BuildInsights(domain.TraitProfile{
		Openness:          50,
		Conscientiousness: 30,
		Extraversion:      50,
		Agreeableness:     30,
		Neuroticism:       80,
		CreativityIndex:   50,
		RiskTolerance:     20,
	})

	if len(insights.GrowthAreas) != 4 {
		t.Fatalf("expected all four growth areas, got %v", insights.GrowthAreas)
	}
}

func TestBuildInsights_StyleDrivenTips(t *testing.T) {
	insights := BuildInsights(domain.TraitProfile{
		CollaborationStyle:      domain.StyleLeader,
		CommunicationPreference: domain.CommDirect,
		WorkPace:                domain.PaceFast,
		FeedbackStyle:           domain.FeedbackFrequent,
	})

	if len(insights.CollaborationTips) != 4 {
		t.Fatalf("expected a tip per declared style, got %v", insights.CollaborationTips)
	}
	if insights.RecommendedPartners[0] != "Supportive partners who appreciate clear direction" {
		t.Fatalf("expected leader recommendation first, got %v", insights.RecommendedPartners)
	}
}

func TestBuildInsights_IntrovertRecommendation(t *testing.T) {
	insights := BuildInsights(domain.TraitProfile{
		Extraversion:       20,
		CollaborationStyle: domain.StyleSupporter,
	})

	found := false
	for _, r := range insights.RecommendedPartners {
		if strings.Contains(r, "independently") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected introvert-friendly recommendation, got %v", insights.RecommendedPartners)
	}
}
