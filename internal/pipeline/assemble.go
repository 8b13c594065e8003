package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"ocr-batch-pipeline/internal/model"
)

// Assembler turns one item's ordered recognition fragments into a single
// coherent text body. Every join decision is a pure function of the two
// adjacent fragment texts, so assembly is fully reproducible.
type Assembler struct {
	ShortTextThreshold int
}

// NewAssembler builds an assembler from the run spec.
func NewAssembler(spec model.AssemblySpec) *Assembler {
	threshold := spec.ShortTextThreshold
	if threshold <= 0 {
		threshold = 10
	}
	return &Assembler{ShortTextThreshold: threshold}
}

var (
	// Paragraph openers: brackets, leading ordinals like "1." or "2)", and
	// short labels followed by a colon.
	openerPattern  = regexp.MustCompile(`^[([{「『]`)
	ordinalPattern = regexp.MustCompile(`^\d+[.)]`)
	labelPattern   = regexp.MustCompile(`^[^\s:]{1,12}:`)

	// A Devanagari-initial word followed by whitespace marks a sentence
	// start in the scanned material; matching is intentionally limited to
	// this range and uppercase Latin, nothing else.
	devanagariStart = regexp.MustCompile(`^[\x{0900}-\x{097F}][^\s]*\s`)
)

// sentenceEnders close a sentence and force a line break before the next
// fragment. The danda forms cover the Devanagari material.
const sentenceEnders = ".!?…।॥"

// Assemble joins the fragments into one body ending with exactly one
// trailing line break. Blank fragments contribute neither text nor a
// separator.
func (a *Assembler) Assemble(segments []model.TextSegment) string {
	var parts []string
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(parts[0])
	for i := 1; i < len(parts); i++ {
		b.WriteString(a.separator(parts[i-1], parts[i]))
		b.WriteString(parts[i])
	}
	b.WriteString("\n")
	return b.String()
}

// separator decides how two adjacent fragments are joined.
func (a *Assembler) separator(current, next string) string {
	if endsSentence(current) || startsParagraph(next) || utf8.RuneCountInString(current) < a.ShortTextThreshold {
		return "\n"
	}
	if !startsUppercaseLatin(next) && !devanagariStart.MatchString(next) {
		// Mid-sentence continuation.
		return " "
	}
	return "\n"
}

func endsSentence(text string) bool {
	runes := []rune(text)
	last := runes[len(runes)-1]
	return strings.ContainsRune(sentenceEnders, last)
}

func startsParagraph(text string) bool {
	return openerPattern.MatchString(text) ||
		ordinalPattern.MatchString(text) ||
		labelPattern.MatchString(text)
}

func startsUppercaseLatin(text string) bool {
	first, _ := utf8.DecodeRuneInString(text)
	return first >= 'A' && first <= 'Z'
}
