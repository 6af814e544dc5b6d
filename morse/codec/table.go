package codec

import "fmt"

// Unknown replaces characters and codes that have no table entry.
const Unknown = "?"

var table = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".", 'F': "..-.",
	'G': "--.", 'H': "....", 'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.", 'Q': "--.-", 'R': ".-.",
	'S': "...", 'T': "-", 'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",

	'1': ".----", '2': "..---", '3': "...--", '4': "....-", '5': ".....",
	'6': "-....", '7': "--...", '8': "---..", '9': "----.", '0': "-----",

	'.': ".-.-.-", ',': "--..--", '?': "..--..", '\'': ".----.", '!': "-.-.--",
	'/': "-..-.", '(': "-.--.", ')': "-.--.-", '&': ".-...", ':': "---...",
	';': "-.-.-.", '=': "-...-", '+': ".-.-.", '-': "-....-", '_': "..--.-",
	'"': ".-..-.", '$': "...-..-", '@': ".--.-.",
}

var reverse = invert(table)

// invert builds the decode table and panics on a duplicate code.
func invert(m map[rune]string) map[string]rune {
	out := make(map[string]rune, len(m))
	for r, code := range m {
		if prev, dup := out[code]; dup {
			panic(fmt.Sprintf("codec: %q and %q share code %q", prev, r, code))
		}
		out[code] = r
	}
	return out
}

// Lookup returns the code for an uppercase character.
func Lookup(r rune) (string, bool) {
	code, ok := table[r]
	return code, ok
}

// Reverse returns the character for a code.
func Reverse(code string) (rune, bool) {
	r, ok := reverse[code]
	return r, ok
}

// Charset returns every encodable character.
func Charset() []rune {
	out := make([]rune, 0, len(table))
	for r := range table {
		out = append(out, r)
	}
	return out
}
