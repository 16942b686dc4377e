// Package triage derives a severity label and self-care suggestions from free-text assistant replies.
package triage

import "strings"

type Severity string

const (
	Mild         Severity = "mild"
	Consultation Severity = "consultation"
	Emergency    Severity = "emergency"
)

// Classifier labels an assistant reply. Keyword matching is the only implementation today;
// a provider returning structured severity can satisfy the same interface.
type Classifier interface {
	Classify(reply string) Severity
	Suggest(reply string, severity Severity) []string
}

type keywordRule struct {
	keywords   []string
	suggestion string
}

var (
	emergencyMarkers    = []string{"emergency", "🚨", "911"}
	consultationMarkers = []string{"consult", "doctor", "appointment"}

	mildRules = []keywordRule{
		{keywords: []string{"rest"}, suggestion: "Get adequate rest"},
		{keywords: []string{"hydrat", "water"}, suggestion: "Stay hydrated"},
		{keywords: []string{"pain reliever", "acetaminophen", "ibuprofen"}, suggestion: "Consider OTC pain relievers"},
	}
)

type KeywordClassifier struct{}

func NewKeywordClassifier() KeywordClassifier {
	return KeywordClassifier{}
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// Classify checks emergency markers first, then consultation markers, else mild.
func (KeywordClassifier) Classify(reply string) Severity {
	lower := strings.ToLower(reply)
	switch {
	case containsAny(lower, emergencyMarkers):
		return Emergency
	case containsAny(lower, consultationMarkers):
		return Consultation
	default:
		return Mild
	}
}

// Suggest only produces suggestions for mild replies.
func (KeywordClassifier) Suggest(reply string, severity Severity) []string {
	if severity != Mild {
		return nil
	}
	lower := strings.ToLower(reply)
	var out []string
	for _, rule := range mildRules {
		if containsAny(lower, rule.keywords) {
			out = append(out, rule.suggestion)
		}
	}
	return out
}
