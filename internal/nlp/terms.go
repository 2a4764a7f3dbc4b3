package nlp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/james-bowman/nlp"

	"github.com/conversight/conversight/internal/record"
)

// TermScore is one weighted keyword from the TF-IDF analysis.
type TermScore struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

const termsPerTopic = 5

// vectoriserStopWords flattens the domain stop-list for the vectorisers.
func vectoriserStopWords() []string {
	words := make([]string, 0, len(domainStopList))
	for w := range domainStopList {
		words = append(words, w)
	}

	sort.Strings(words)

	return words
}

// TopTerms cleans the corpus and returns the topN terms by aggregate TF-IDF
// score, descending. Domain stop-list terms never appear in the result.
func TopTerms(messages []string, profile record.Profile, usernames []string, topN int) ([]TermScore, error) {
	docs := prepareCorpus(messages, profile, usernames)
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	vectoriser := nlp.NewCountVectoriser(vectoriserStopWords()...)

	counts, err := vectoriser.FitTransform(docs...)
	if err != nil {
		return nil, fmt.Errorf("vectorising corpus: %w", err)
	}

	weighted, err := nlp.NewTfidfTransformer().FitTransform(counts)
	if err != nil {
		return nil, fmt.Errorf("computing tf-idf weights: %w", err)
	}

	vocab := invertVocabulary(vectoriser.Vocabulary)

	terms, docCount := weighted.Dims()

	scores := make([]TermScore, 0, terms)

	for i := 0; i < terms; i++ {
		var sum float64
		for j := 0; j < docCount; j++ {
			sum += weighted.At(i, j)
		}

		if term := vocab[i]; term != "" && !domainStopList[term] {
			scores = append(scores, TermScore{Term: term, Score: sum})
		}
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	if len(scores) > topN {
		scores = scores[:topN]
	}

	return scores, nil
}

// Topics fits an LDA topic model with the given topic count and returns one
// labeled line per topic: "Topic N: w1 | w2 | ...".
func Topics(messages []string, topicCount int, profile record.Profile, usernames []string) ([]string, error) {
	docs := prepareCorpus(messages, profile, usernames)
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	vectoriser := nlp.NewCountVectoriser(vectoriserStopWords()...)

	counts, err := vectoriser.FitTransform(docs...)
	if err != nil {
		return nil, fmt.Errorf("vectorising corpus: %w", err)
	}

	lda := nlp.NewLatentDirichletAllocation(topicCount)

	if _, err := lda.FitTransform(counts); err != nil {
		return nil, fmt.Errorf("fitting topic model: %w", err)
	}

	topicsOverWords := lda.Components()
	vocab := invertVocabulary(vectoriser.Vocabulary)

	topicCountFit, vocabSize := topicsOverWords.Dims()

	labels := make([]string, 0, topicCountFit)

	for topic := 0; topic < topicCountFit; topic++ {
		weights := make([]TermScore, 0, vocabSize)

		for word := 0; word < vocabSize; word++ {
			term := vocab[word]
			if term == "" || domainStopList[term] {
				continue
			}

			weights = append(weights, TermScore{Term: term, Score: topicsOverWords.At(topic, word)})
		}

		sort.SliceStable(weights, func(i, j int) bool { return weights[i].Score > weights[j].Score })

		if len(weights) > termsPerTopic {
			weights = weights[:termsPerTopic]
		}

		terms := make([]string, len(weights))
		for i, w := range weights {
			terms[i] = w.Term
		}

		labels = append(labels, fmt.Sprintf("Topic %d: %s", topic+1, strings.Join(terms, " | ")))
	}

	return labels, nil
}

func invertVocabulary(vocabulary map[string]int) map[int]string {
	inverse := make(map[int]string, len(vocabulary))
	for term, index := range vocabulary {
		inverse[index] = term
	}

	return inverse
}
