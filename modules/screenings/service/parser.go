package service

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/jobber-ats/core/modules/screenings/model"
)

var sectionOrder = []string{"SKILLS:", "EXPERIENCE:", "EDUCATION:", "CULTURAL_FIT:", "MATCH_SCORE:", "ANALYSIS:", "RECOMMENDATION:"}

var errUnparseable = errors.New("response did not contain every required section marker")

var decimalRe = regexp.MustCompile(`-?\d+(\.\d+)?`)
var integerRe = regexp.MustCompile(`-?\d+`)

// recommendationPriority is the substring-containment check order: the
// first name found anywhere in the RECOMMENDATION section wins, tried
// in this exact order so "NO_HIRE" never matches as a false "HIRE".
var recommendationPriority = []model.Recommendation{
	model.RecommendationStrongHire,
	model.RecommendationNoHire,
	model.RecommendationMaybe,
	model.RecommendationHire,
}

// parsedResult is the set of fields extracted from a model response,
// prior to the candidate/modelUsed/processingMs fields the caller
// attaches.
type parsedResult struct {
	Skills         string
	Experience     float64
	Education      string
	CulturalFit    string
	MatchScore     int
	Analysis       string
	Recommendation model.Recommendation
}

// parseResponse extracts each section by locating its literal marker
// and taking the substring up to the next marker in the fixed order.
// Any missing marker fails the parse; the caller falls back to the
// keyword heuristic.
func parseResponse(text string) (*parsedResult, error) {
	sections := make(map[string]string, len(sectionOrder))

	for i, marker := range sectionOrder {
		start := strings.Index(text, marker)
		if start == -1 {
			return nil, errUnparseable
		}
		valueStart := start + len(marker)

		end := len(text)
		for _, next := range sectionOrder[i+1:] {
			if idx := strings.Index(text[valueStart:], next); idx != -1 {
				candidate := valueStart + idx
				if candidate < end {
					end = candidate
				}
			}
		}
		sections[marker] = strings.TrimSpace(text[valueStart:end])
	}

	experience, err := parseDecimal(sections["EXPERIENCE:"])
	if err != nil {
		return nil, err
	}

	matchScore, err := parseMatchScore(sections["MATCH_SCORE:"])
	if err != nil {
		return nil, err
	}

	return &parsedResult{
		Skills:         sections["SKILLS:"],
		Experience:     experience,
		Education:      sections["EDUCATION:"],
		CulturalFit:    sections["CULTURAL_FIT:"],
		MatchScore:     matchScore,
		Analysis:       sections["ANALYSIS:"],
		Recommendation: parseRecommendation(sections["RECOMMENDATION:"]),
	}, nil
}

func parseDecimal(s string) (float64, error) {
	match := decimalRe.FindString(s)
	if match == "" {
		return 0, errUnparseable
	}
	return strconv.ParseFloat(match, 64)
}

func parseMatchScore(s string) (int, error) {
	match := integerRe.FindString(s)
	if match == "" {
		return 0, errUnparseable
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n, nil
}

func parseRecommendation(s string) model.Recommendation {
	for _, r := range recommendationPriority {
		if strings.Contains(s, string(r)) {
			return r
		}
	}
	return model.RecommendationMaybe
}
