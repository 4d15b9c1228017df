package chat

import (
	"context"
	"strings"
)

// AnswerProvider produces the tutor's reply to a learner question.
type AnswerProvider interface {
	Answer(ctx context.Context, question string) (Reply, error)
}

// Reply is the content of a tutor message before it joins a transcript.
type Reply struct {
	Content string
	Sources []Source
}

const (
	vfrAnswer = "VFR (Visual Flight Rules) weather minimums vary by airspace. " +
		"In Class G airspace below 1,200 feet AGL, you need 1 mile visibility and clear of clouds during the day. " +
		"In Class E airspace below 10,000 feet MSL, you need 3 miles visibility, 1,000 feet above, " +
		"500 feet below, and 2,000 feet horizontal from clouds."

	ignitionAnswer = "Aircraft magnetos are self-contained generators that provide electricity to spark plugs. " +
		"They're critical because they operate independently of the aircraft's main electrical system, " +
		"providing ignition even if the entire electrical system fails. During your engine runup, " +
		"you check each magneto individually by switching from BOTH to LEFT and RIGHT to ensure each is working properly."

	clarifyAnswer = "I'd be happy to help with that aviation topic. " +
		"Could you provide more specific details about what you'd like to learn? " +
		"I can explain concepts related to flight operations, regulations, aerodynamics, " +
		"aircraft systems, or help you prepare for FAA knowledge tests."
)

// keywordRule maps any of its keywords to a canned reply.
type keywordRule struct {
	keywords []string
	reply    Reply
}

// KeywordProvider answers from a fixed table of keyword rules. The first
// rule with a keyword contained in the lowercased question wins.
type KeywordProvider struct {
	rules    []keywordRule
	fallback Reply
}

var _ AnswerProvider = (*KeywordProvider)(nil)

// NewKeywordProvider returns the built-in ground-school answer table.
func NewKeywordProvider() *KeywordProvider {
	return &KeywordProvider{
		rules: []keywordRule{
			{
				keywords: []string{"vfr"},
				reply: Reply{
					Content: vfrAnswer,
					Sources: []Source{{Title: "FAR 91.155", Reference: "Basic VFR Weather Minimums"}},
				},
			},
			{
				keywords: []string{"engine", "magneto"},
				reply: Reply{
					Content: ignitionAnswer,
					Sources: []Source{{Title: "Aircraft Systems for Pilots", Reference: "Chapter 6: Ignition Systems"}},
				},
			},
		},
		fallback: Reply{Content: clarifyAnswer},
	}
}

// Answer never fails.
func (p *KeywordProvider) Answer(_ context.Context, question string) (Reply, error) {
	q := strings.ToLower(question)
	for _, r := range p.rules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return cloneReply(r.reply), nil
			}
		}
	}
	return cloneReply(p.fallback), nil
}

func cloneReply(r Reply) Reply {
	if r.Sources != nil {
		r.Sources = append([]Source(nil), r.Sources...)
	}
	return r
}
