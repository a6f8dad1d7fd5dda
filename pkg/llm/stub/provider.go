package stub

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"ai-billing-be/pkg/llm"
)

// StubProvider is a deterministic keyword/regex provider used in
// development and tests. It never fails and never calls out.
type StubProvider struct{}

var _ llm.Provider = &StubProvider{}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

var (
	createKeywords = []string{"criar", "gerar", "emitir", "novo boleto", "cobrar"}
	cancelKeywords = []string{"cancelar", "anular", "cancelamento"}
	statusKeywords = []string{"status", "situação", "como está", "verificar", "checar"}
	sendKeywords   = []string{"enviar", "mandar", "mensagem", "lembrete"}
	listKeywords   = []string{"listar", "mostrar", "quais boletos", "meus boletos"}
)

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func (p *StubProvider) ClassifyIntent(ctx context.Context, text string) (*llm.ClassificationResult, error) {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, createKeywords):
		return &llm.ClassificationResult{Intent: "create_boleto", Confidence: 0.85}, nil
	case containsAny(lower, cancelKeywords):
		return &llm.ClassificationResult{Intent: "cancel_boleto", Confidence: 0.85}, nil
	case containsAny(lower, statusKeywords):
		return &llm.ClassificationResult{Intent: "check_status", Confidence: 0.85}, nil
	case containsAny(lower, sendKeywords):
		return &llm.ClassificationResult{Intent: "send_message", Confidence: 0.80}, nil
	case containsAny(lower, listKeywords):
		return &llm.ClassificationResult{Intent: "list_boletos", Confidence: 0.80}, nil
	}

	return &llm.ClassificationResult{Intent: "unknown", Confidence: 0.3}, nil
}

var (
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)r\$\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:reais|real)`),
		regexp.MustCompile(`(?i)valor\s*(?:de)?\s*r?\$?\s*([\d.,]+)`),
	}
	datePattern  = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})(?:[/\-](\d{2,4}))?`)
	phonePattern = regexp.MustCompile(`(?:\+?55\s?)?(?:\(?\d{2}\)?\s?)?\d{4,5}[\s\-]?\d{4}`)
	// "para"/"cliente" introduce a payee far more reliably than "de",
	// which also precedes amounts ("boleto de R$ 150,00").
	namePattern         = regexp.MustCompile(`(?i)(?:para|cliente)\s+([A-Za-zÀ-ú]+(?:\s+[A-Za-zÀ-ú]+)?)`)
	nameFallbackPattern = regexp.MustCompile(`(?i)de\s+([A-Za-zÀ-ú]{2,}(?:\s+[A-Za-zÀ-ú]{2,})?)`)
	uuidPattern         = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
	digitsOnly          = regexp.MustCompile(`[^\d]`)
)

// nameStopWords are tokens that follow a payee name without being part
// of it ("para maria venc 10/03").
var nameStopWords = map[string]bool{
	"venc":       true,
	"vencimento": true,
	"vencendo":   true,
	"dia":        true,
	"valor":      true,
	"hoje":       true,
	"amanhã":     true,
	"amanha":     true,
	"com":        true,
	"até":        true,
	"ate":        true,
}

func extractName(text string) *string {
	m := namePattern.FindStringSubmatch(text)
	if m == nil {
		m = nameFallbackPattern.FindStringSubmatch(text)
	}
	if m == nil {
		return nil
	}

	words := strings.Fields(m[1])
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if nameStopWords[strings.ToLower(w)] {
			break
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return nil
	}

	name := titleCase(strings.Join(kept, " "))
	return &name
}

func (p *StubProvider) ExtractEntities(ctx context.Context, text string, intent string) (*llm.ExtractionResult, error) {
	result := &llm.ExtractionResult{}
	lower := strings.ToLower(text)

	for _, pattern := range amountPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			cents := int64(v * 100)
			result.AmountCents = &cents
		}
		break
	}

	now := time.Now()
	switch {
	case strings.Contains(lower, "amanhã") || strings.Contains(lower, "amanha"):
		due := now.AddDate(0, 0, 1).Format("2006-01-02")
		result.DueDate = &due
	case strings.Contains(lower, "hoje"):
		due := now.Format("2006-01-02")
		result.DueDate = &due
	default:
		if m := datePattern.FindStringSubmatch(text); m != nil {
			day, dayErr := strconv.Atoi(m[1])
			month, monthErr := strconv.Atoi(m[2])
			year := now.Year()
			if m[3] != "" {
				if y, err := strconv.Atoi(m[3]); err == nil {
					year = y
					if year < 100 {
						year += 2000
					}
				}
			}
			if dayErr == nil && monthErr == nil {
				due := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
				result.DueDate = &due
			}
		}
	}

	if m := phonePattern.FindString(text); m != "" {
		phone := digitsOnly.ReplaceAllString(m, "")
		if len(phone) >= 10 {
			result.ContactPhone = &phone
		}
	}

	result.ContactName = extractName(text)

	if m := uuidPattern.FindString(text); m != "" {
		id := strings.ToLower(m)
		result.BoletoId = &id
	}

	return result, nil
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
