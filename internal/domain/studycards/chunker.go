package studycards

import "strings"

// Chunk greedily packs sentences into segments of at most maxSize characters,
// counting the single space joining consecutive sentences. Boundaries always
// fall on sentence ends; a lone sentence longer than maxSize becomes its own
// oversized chunk rather than being split mid-sentence. Deterministic: the
// same input always yields the same boundaries.
func Chunk(splitter SentenceSplitter, text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = defaultMaxChunkChars
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := splitter.Split(text)
	var (
		chunks  []string
		current strings.Builder
	)
	for _, sent := range sentences {
		sent = strings.TrimSpace(sent)
		if sent == "" {
			continue
		}
		cost := len(sent)
		if current.Len() > 0 {
			cost++ // joining space
		}
		if current.Len() > 0 && current.Len()+cost > maxSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sent)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	if len(chunks) == 0 {
		// splitter yielded nothing usable; treat the whole text as one chunk
		return []string{text}
	}
	return chunks
}
