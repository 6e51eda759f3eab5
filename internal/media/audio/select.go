package audio

import (
	"strings"

	"golang.org/x/text/language"

	"vidscribe/internal/media/ffprobe"
)

// Selection describes the audio stream chosen for extraction.
type Selection struct {
	Primary      ffprobe.Stream
	PrimaryIndex int
	// LanguageMatched reports whether the stream language matched the
	// recognition language.
	LanguageMatched bool
}

// Select returns the audio stream to extract for recognition. Streams whose
// language tag shares a base language with want (a BCP-47 tag) are preferred;
// among those, the default-flagged stream wins, then the one appearing first.
// PrimaryIndex is -1 when there is no audio stream.
func Select(streams []ffprobe.Stream, want string) Selection {
	candidates := buildCandidates(streams, want)
	if len(candidates) == 0 {
		return Selection{PrimaryIndex: -1}
	}

	best := candidates[0]
	bestScore := scorePrimary(best)
	for i := 1; i < len(candidates); i++ {
		if score := scorePrimary(candidates[i]); score > bestScore {
			best = candidates[i]
			bestScore = score
		}
	}
	return Selection{
		Primary:         best.stream,
		PrimaryIndex:    best.stream.Index,
		LanguageMatched: best.languageMatch,
	}
}

type candidate struct {
	stream         ffprobe.Stream
	order          int
	languageMatch  bool
	defaultFlagged bool
	channels       int
}

func scorePrimary(cand candidate) float64 {
	score := 0.0
	if cand.languageMatch {
		score += 1000
	}
	if cand.defaultFlagged {
		score += 100
	}
	// Channel layout beyond "has audio" does not affect ranking.
	if cand.channels > 0 {
		score += 10
	}
	score -= float64(cand.order) * 0.1
	return score
}

func buildCandidates(streams []ffprobe.Stream, want string) []candidate {
	wantBase, hasWant := baseLanguage(want)
	result := make([]candidate, 0, len(streams))
	order := 0
	for _, stream := range streams {
		if !stream.IsAudio() {
			continue
		}
		cand := candidate{
			stream:         stream,
			order:          order,
			defaultFlagged: stream.IsDefault(),
			channels:       stream.Channels,
		}
		if hasWant {
			if base, ok := baseLanguage(stream.Language()); ok && base == wantBase {
				cand.languageMatch = true
			}
		}
		result = append(result, cand)
		order++
	}
	return result
}

// baseLanguage parses BCP-47 and ISO 639-2 codes ("es-ES", "spa") into their
// base language. "und" and unparseable values report false.
func baseLanguage(code string) (language.Base, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return language.Base{}, false
	}
	tag, err := language.Parse(code)
	if err != nil || tag == language.Und {
		return language.Base{}, false
	}
	base, confidence := tag.Base()
	if confidence != language.Exact {
		return language.Base{}, false
	}
	return base, true
}
