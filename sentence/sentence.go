package sentence

// Doc is a tagged text: a title and its sentences.
type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Sentences []Sentence `json:"sentences"`
}

// Library is a collection of Doc
type Library []Doc

// Sentence is an ordered sequence of tokens. The order determines the
// transition context during training.
type Sentence struct {
	Id     int     `json:"id"`
	DocId  int     `json:"doc_id"`
	Tokens []Token `json:"tokens"`
}

// Token represents a word of the sentence and its POS.
type Token struct {
	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`

	// The unmodified word
	Text string `json:"text"`

	// The part of speech. Empty for untagged text.
	Pos string `json:"pos,omitempty"`
}

// Words returns the text of every token.
func (s Sentence) Words() []string {
	words := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		words[i] = t.Text
	}
	return words
}

// Tags returns the POS of every token.
func (s Sentence) Tags() []string {
	tags := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		tags[i] = t.Pos
	}
	return tags
}

// AllSentences returns the sentences of every doc in the library.
func (l Library) AllSentences() []Sentence {
	var all []Sentence
	for _, doc := range l {
		all = append(all, doc.Sentences...)
	}
	return all
}
