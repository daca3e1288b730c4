package datagen

import (
	"math/rand/v2"
	"strings"
)

// ── Word pools ──

var adjectives = []string{
	"able", "ancient", "angry", "bald", "beautiful", "big", "bitter", "black",
	"blue", "bold", "brave", "breezy", "bright", "broad", "calm", "careful",
	"cheap", "clever", "cold", "cool", "crisp", "curly", "damp", "dark",
	"deep", "eager", "early", "easy", "empty", "fair", "famous", "fancy",
	"fast", "fierce", "flat", "fluffy", "fresh", "friendly", "funny", "gentle",
	"giant", "glad", "golden", "good", "grand", "great", "green", "happy",
	"heavy", "helpful", "hollow", "honest", "huge", "icy", "jolly", "kind",
	"large", "late", "lazy", "light", "little", "lively", "long", "loud",
	"lucky", "mighty", "modern", "narrow", "neat", "new", "nice", "noisy",
	"odd", "old", "orange", "plain", "polite", "proud", "purple", "quick",
	"quiet", "rapid", "red", "rich", "round", "rough", "sad", "salty",
	"sharp", "shiny", "short", "silent", "silly", "slow", "small", "smooth",
	"soft", "sour", "spicy", "steep", "strong", "sunny", "sweet", "swift",
	"tall", "tame", "thick", "thin", "tiny", "tough", "ugly", "vast",
	"warm", "weak", "wet", "white", "wide", "wild", "wise", "young",
}

var nouns = []string{
	"airport", "animal", "apple", "arm", "army", "baby", "balloon", "bank",
	"battery", "beach", "bear", "bed", "bird", "boat", "book", "bottle",
	"bread", "bridge", "butter", "cake", "camera", "car", "carpet", "cat",
	"chair", "cheese", "church", "city", "cloud", "coat", "computer", "cow",
	"crayon", "dinosaur", "doctor", "dog", "door", "dragon", "engine", "eye",
	"farm", "father", "finger", "fire", "fish", "flag", "flower", "forest",
	"garden", "ghost", "glass", "guitar", "hair", "hamburger", "hat", "helicopter",
	"horse", "hospital", "house", "island", "jewel", "kangaroo", "king", "kitchen",
	"knife", "lamp", "lawyer", "lemon", "library", "lion", "magazine", "market",
	"microscope", "monkey", "morning", "mountain", "nail", "needle", "night", "ocean",
	"orange", "oxygen", "painting", "parrot", "pencil", "piano", "pillow", "pizza",
	"planet", "plastic", "potato", "queen", "rabbit", "rainbow", "river", "rocket",
	"salmon", "school", "scooter", "shoe", "soap", "spoon", "square", "star",
	"sugar", "sun", "table", "teacher", "telephone", "television", "tent", "tiger",
	"toothbrush", "traffic", "train", "truck", "umbrella", "van", "vase", "water",
	"whale", "window", "wire", "xylophone", "yacht", "yak", "zebra", "zoo",
}

// slugWords returns n random words: adjectives followed by one trailing noun.
func slugWords(r *rand.Rand, n int) []string {
	if n <= 0 {
		return nil
	}
	words := make([]string, n)
	for i := 0; i < n-1; i++ {
		words[i] = adjectives[r.IntN(len(adjectives))]
	}
	words[n-1] = nouns[r.IntN(len(nouns))]
	return words
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// titleSlug joins the words with every word capitalized.
func titleSlug(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = capitalize(w)
	}
	return strings.Join(out, " ")
}

// sentenceSlug joins the words with only the first one capitalized.
func sentenceSlug(words []string) string {
	if len(words) == 0 {
		return ""
	}
	out := make([]string, len(words))
	copy(out, words)
	out[0] = capitalize(out[0])
	return strings.Join(out, " ")
}
