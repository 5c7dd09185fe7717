// Package chat answers business questions from a fixed set of canned replies.
package chat

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

type Topic string

const (
	TopicNone       Topic = ""
	TopicGST        Topic = "gst"
	TopicLoans      Topic = "loans"
	TopicCompliance Topic = "compliance"
	TopicMarketing  Topic = "marketing"
	TopicInventory  Topic = "inventory"
)

type bucket struct {
	topic    Topic
	keywords []string
	reply    string
}

// buckets are checked in order; the first with a matching keyword wins.
var buckets = []bucket{
	{
		topic:    TopicGST,
		keywords: []string{"gst", "tax", "filing"},
		reply: "For GST filing, you'll need:\n\n• Business PAN card\n• Bank account details\n• Sales and purchase invoices\n• HSN/SAC codes\n\n" +
			"I can help you with:\n• GST registration\n• Return filing\n• Payment process\n• Compliance requirements\n\n" +
			"Would you like me to guide you through any specific aspect?",
	},
	{
		topic:    TopicLoans,
		keywords: []string{"loan", "funding", "finance"},
		reply: "I can help you with various business loans and government schemes:\n\n" +
			"• MUDRA Loans (up to ₹10 lakh)\n• CGTMSE (collateral-free loans)\n• Stand-Up India Scheme\n• PSB Loans in 59 Minutes\n\n" +
			"These schemes offer competitive interest rates and flexible repayment options. Would you like to explore any specific loan program?",
	},
	{
		topic:    TopicCompliance,
		keywords: []string{"compliance", "legal", "regulation"},
		reply: "Business compliance includes:\n\n• GST filing and returns\n• Income tax compliance\n• MSME registration\n" +
			"• Shop and establishment license\n• Labor law compliance\n\n" +
			"I can provide checklists and connect you with legal experts for specific compliance requirements. What type of compliance are you concerned about?",
	},
	{
		topic:    TopicMarketing,
		keywords: []string{"marketing", "sales", "customer"},
		reply: "For business marketing, consider:\n\n• Digital marketing strategies\n• Social media presence\n• Customer acquisition\n• Brand building\n• Sales techniques\n\n" +
			"I can provide marketing guides and connect you with marketing experts. Are you looking for online or offline marketing strategies?",
	},
	{
		topic:    TopicInventory,
		keywords: []string{"inventory", "stock", "product"},
		reply: "I see you're asking about inventory management. You can:\n\n" +
			"• View current stock levels\n• Add new products\n• Track low stock items\n• Manage product categories\n\n" +
			"Would you like me to show you your current inventory status or help with inventory management?",
	},
}

// DefaultReplies are used when no topic matches.
var DefaultReplies = []string{
	"I understand you're asking about business-related topics. I specialize in GST, loans, compliance, and marketing for MSMEs. How can I assist you specifically?",
	"That's an interesting question about business operations. I can help you with various aspects of running and growing your business. Could you provide more details?",
	"I'd be happy to help with your business query! I have expertise in government schemes, compliance, inventory management, and more. What specific area would you like to discuss?",
	"Thank you for your question. As your business assistant, I can provide guidance on multiple business aspects. Let me know what you'd like to focus on today.",
}

type Responder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewResponder returns a responder picking fallback replies with rng. A nil
// rng is seeded from the clock.
func NewResponder(rng *rand.Rand) *Responder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Responder{rng: rng}
}

// Topic reports which bucket text falls into, or TopicNone.
func (r *Responder) Topic(text string) Topic {
	if b, ok := match(text); ok {
		return b.topic
	}
	return TopicNone
}

// Respond returns the canned reply for text.
func (r *Responder) Respond(text string) string {
	if b, ok := match(text); ok {
		return b.reply
	}

	r.mu.Lock()
	i := r.rng.Intn(len(DefaultReplies))
	r.mu.Unlock()
	return DefaultReplies[i]
}

// Reply returns the canned text for a topic.
func Reply(topic Topic) (string, bool) {
	for _, b := range buckets {
		if b.topic == topic {
			return b.reply, true
		}
	}
	return "", false
}

func match(text string) (bucket, bool) {
	lower := strings.ToLower(text)
	for _, b := range buckets {
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				return b, true
			}
		}
	}
	return bucket{}, false
}
