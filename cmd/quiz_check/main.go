// quiz_check scores a JSON answer file against the built-in catalog and prints
// the resulting trait vector. Useful for sanity-checking content edits without
// a running server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"lehrmatch/internal/domain"
	"lehrmatch/internal/quiz"
)

type answerFile struct {
	Answers []struct {
		QuestionID  string `json:"question_id"`
		Phase       string `json:"phase"`
		OptionIndex int    `json:"option_index"`
	} `json:"answers"`
}

func main() {
	path := flag.String("answers", "answers.json", "path to the answers file")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("read %s: %v", *path, err)
	}
	var file answerFile
	if err := json.Unmarshal(raw, &file); err != nil {
		log.Fatalf("parse %s: %v", *path, err)
	}

	now := time.Now().UTC()
	answers := make([]domain.QuizAnswer, 0, len(file.Answers))
	for _, a := range file.Answers {
		answers = append(answers, domain.QuizAnswer{
			QuestionID:  a.QuestionID,
			Phase:       domain.QuizPhase(a.Phase),
			OptionIndex: a.OptionIndex,
			AnsweredAt:  now,
		})
	}

	engine := quiz.NewEngine(quiz.NewCatalog())
	result := engine.Score(answers)
	for _, id := range result.UnknownIDs {
		fmt.Printf("warning: unknown question id %q\n", id)
	}

	traits := result.TraitVector(1, now)
	fmt.Printf("answers scored: %d\n", len(answers)-len(result.UnknownIDs))
	fmt.Printf("top codes:      %v\n", traits.Holland.TopThreeCodes())
	fmt.Printf("dominant type:  %s\n", traits.Holland.DominantType())
	fmt.Println()

	fmt.Println("RIASEC")
	for _, d := range domain.RiasecOrder {
		fmt.Printf("  %-15s %.3f\n", d, traits.Holland.Get(d))
	}
	fmt.Println("Work values")
	for _, d := range domain.WorkValueOrder {
		fmt.Printf("  %-17s %.3f\n", d, traits.WorkValues.Get(d))
	}
}
