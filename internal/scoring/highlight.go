package scoring

import "github.com/bandscore/bandscore-api/pkg/ai"

// HighlightCorrections attaches to every grammar and vocabulary correction
// the rune-offset positions of its flagged text inside the essay. Entries
// whose text is empty or never occurs are passed through without positions,
// never dropped. Structure corrections carry no text spans and are returned
// unchanged. Offsets are rune indices so multi-byte characters count as one
// position each.
func HighlightCorrections(essayText string, corrections ai.Corrections) ai.Corrections {
	highlighted := ai.Corrections{
		Grammar:    make([]ai.GrammarCorrection, 0, len(corrections.Grammar)),
		Vocabulary: make([]ai.VocabularyCorrection, 0, len(corrections.Vocabulary)),
		Structure:  corrections.Structure,
	}

	for _, correction := range corrections.Grammar {
		correction.Positions = findOccurrences(essayText, correction.Original)
		highlighted.Grammar = append(highlighted.Grammar, correction)
	}

	for _, correction := range corrections.Vocabulary {
		correction.Positions = findOccurrences(essayText, correction.Original)
		highlighted.Vocabulary = append(highlighted.Vocabulary, correction)
	}

	return highlighted
}

// findOccurrences locates every case-sensitive exact occurrence of sub in
// text. The scan resumes one rune after each match start, so immediately
// adjacent and overlapping repeats are all reported.
func findOccurrences(text, sub string) []ai.TextPosition {
	if sub == "" {
		return nil
	}

	textRunes := []rune(text)
	subRunes := []rune(sub)
	if len(subRunes) > len(textRunes) {
		return nil
	}

	var positions []ai.TextPosition
	for start := 0; start+len(subRunes) <= len(textRunes); {
		index := indexRunes(textRunes, subRunes, start)
		if index < 0 {
			break
		}
		positions = append(positions, ai.TextPosition{
			Start: index,
			End:   index + len(subRunes),
			Text:  sub,
		})
		start = index + 1
	}

	return positions
}

func indexRunes(text, sub []rune, from int) int {
	for i := from; i+len(sub) <= len(text); i++ {
		matched := true
		for j := range sub {
			if text[i+j] != sub[j] {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}
