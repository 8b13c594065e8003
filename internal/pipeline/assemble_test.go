package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ocr-batch-pipeline/internal/model"
)

func segs(texts ...string) []model.TextSegment {
	out := make([]model.TextSegment, len(texts))
	for i, t := range texts {
		out[i] = model.TextSegment{Text: t}
	}
	return out
}

func TestAssembleJoinDecisions(t *testing.T) {
	a := NewAssembler(model.AssemblySpec{ShortTextThreshold: 10})

	tests := []struct {
		name string
		in   []model.TextSegment
		want string
	}{
		{
			"sentence end forces line break",
			segs("The train departs at noon.", "Platform four"),
			"The train departs at noon.\nPlatform four\n",
		},
		{
			"question mark forces line break",
			segs("Is the seat confirmed?", "yes it is"),
			"Is the seat confirmed?\nyes it is\n",
		},
		{
			"danda forces line break",
			segs("गाड़ी समय पर है।", "अगला पड़ाव"),
			"गाड़ी समय पर है।\nअगला पड़ाव\n",
		},
		{
			"lowercase continuation joins with space",
			segs("The journey continues", "without a pause"),
			"The journey continues without a pause\n",
		},
		{
			"uppercase start breaks the line",
			segs("End of the first block", "Second Block"),
			"End of the first block\nSecond Block\n",
		},
		{
			"short fragment always breaks",
			segs("Name:", "Arjun Mehta"),
			"Name:\nArjun Mehta\n",
		},
		{
			"bracket opener breaks the line",
			segs("continuation would be possible", "(see notes)"),
			"continuation would be possible\n(see notes)\n",
		},
		{
			"ordinal opener breaks the line",
			segs("the following rules apply", "1. carry identification"),
			"the following rules apply\n1. carry identification\n",
		},
		{
			"label opener breaks the line",
			segs("details are listed below", "Total: 450.00"),
			"details are listed below\nTotal: 450.00\n",
		},
		{
			"devanagari word start breaks the line",
			segs("यात्रा विवरण निम्नलिखित है और", "स्टेशन कोड NDLS"),
			"यात्रा विवरण निम्नलिखित है और\nस्टेशन कोड NDLS\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Assemble(tt.in))
		})
	}
}

func TestAssembleBlankFragments(t *testing.T) {
	a := NewAssembler(model.AssemblySpec{ShortTextThreshold: 10})

	assert.Equal(t, "", a.Assemble(nil))
	assert.Equal(t, "", a.Assemble(segs("", "   ", "\t")))
	// Blanks contribute neither text nor separators.
	assert.Equal(t, "only the real fragment survives\n", a.Assemble(segs("", "only the real fragment survives", "  ")))
}

func TestAssembleWhitespaceTrimming(t *testing.T) {
	a := NewAssembler(model.AssemblySpec{ShortTextThreshold: 10})

	got := a.Assemble(segs("  padded fragment here  ", "\tand its continuation\n"))
	assert.Equal(t, "padded fragment here and its continuation\n", got)
}

func TestAssembleSingleTrailingNewline(t *testing.T) {
	a := NewAssembler(model.AssemblySpec{ShortTextThreshold: 10})

	got := a.Assemble(segs("One complete sentence here."))
	assert.Equal(t, "One complete sentence here.\n", got)
}

func TestAssembleDeterministic(t *testing.T) {
	a := NewAssembler(model.AssemblySpec{ShortTextThreshold: 10})
	in := segs("The first fragment of text.", "followed by more", "And a final one")

	first := a.Assemble(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, a.Assemble(in))
	}
}

func TestAssembleThresholdBoundary(t *testing.T) {
	a := NewAssembler(model.AssemblySpec{ShortTextThreshold: 10})

	// Exactly at the threshold the fragment is not "short" and the
	// lowercase continuation joins with a space.
	got := a.Assemble(segs("abcdefghij", "continues here"))
	assert.Equal(t, "abcdefghij continues here\n", got)

	got = a.Assemble(segs("abcdefghi", "continues here"))
	assert.Equal(t, "abcdefghi\ncontinues here\n", got)
}
