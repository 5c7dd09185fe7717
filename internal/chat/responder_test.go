package chat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondBuckets(t *testing.T) {
	r := NewResponder(rand.New(rand.NewSource(1)))

	tests := []struct {
		name  string
		input string
		want  Topic
	}{
		{"gst", "How do I file GST?", TopicGST},
		{"tax lower", "income tax question", TopicGST},
		{"filing", "return FILING dates", TopicGST},
		{"loan", "I need a loan", TopicLoans},
		{"finance", "Finance options?", TopicLoans},
		{"legal", "legal help please", TopicCompliance},
		{"regulation", "new regulations", TopicCompliance},
		{"customer", "how to get more customers", TopicMarketing},
		{"stock", "stock levels", TopicInventory},
		{"product", "add a Product", TopicInventory},
		{"gst beats loan", "loan for paying gst", TopicGST},
		{"loan beats inventory", "loan to buy stock", TopicLoans},
		{"compliance beats marketing", "sales compliance", TopicCompliance},
		{"substring match", "syntax", TopicGST},
		{"nothing", "hello there", TopicNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Topic(tt.input))

			reply := r.Respond(tt.input)
			if tt.want == TopicNone {
				assert.Contains(t, DefaultReplies, reply)
				return
			}
			want, ok := Reply(tt.want)
			require.True(t, ok)
			assert.Equal(t, want, reply)
		})
	}
}

func TestRespondGSTAlwaysWins(t *testing.T) {
	r := NewResponder(nil)
	gst, _ := Reply(TopicGST)

	for _, input := range []string{"GST", "gSt loan", "Loan? Compliance? gst!", "marketing inventory GST funding"} {
		assert.Equal(t, gst, r.Respond(input), input)
	}
}

func TestRespondFallbackIsDeterministicPerSeed(t *testing.T) {
	a := NewResponder(rand.New(rand.NewSource(99)))
	b := NewResponder(rand.New(rand.NewSource(99)))

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		ra, rb := a.Respond("hi"), b.Respond("hi")
		assert.Equal(t, ra, rb)
		seen[ra] = true
	}
	assert.Len(t, seen, len(DefaultReplies))
}
