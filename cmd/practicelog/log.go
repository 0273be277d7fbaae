package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"jobtrack-engine/internal/store"
)

var (
	platforms    = []string{"sql-practice.com", "programiz", "dbeaver", "other"}
	difficulties = []string{"Easy", "Medium", "Hard"}
	databases    = []string{"Hospital", "Northwind", "Custom", "None"}
)

func newLogCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Interactively log one practice session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := promptSession()
			if err != nil {
				return err
			}

			db, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			id, err := store.AddPracticeSession(context.Background(), db.Pool, *session)
			if err != nil {
				return err
			}
			fmt.Printf("Session #%d saved.\n", id)
			return nil
		},
	}
}

func promptSession() (*store.PracticeSession, error) {
	var s store.PracticeSession
	var err error

	if s.Platform, err = selectOne("Platform", platforms); err != nil {
		return nil, err
	}
	if s.Difficulty, err = selectOne("Difficulty", difficulties); err != nil {
		return nil, err
	}
	if s.DatabaseUsed, err = selectOne("Database used", databases); err != nil {
		return nil, err
	}
	if s.QuestionText, err = promptRequired("Question"); err != nil {
		return nil, err
	}
	if s.MyQuery, err = promptRequired("Your query"); err != nil {
		return nil, err
	}
	if s.CorrectQuery, err = promptOptional("Correct query (if different)"); err != nil {
		return nil, err
	}

	correct, err := selectOne("Was it correct", []string{"yes", "no"})
	if err != nil {
		return nil, err
	}
	s.IsCorrect = correct == "yes"

	minutes, err := promptMinutes("Time spent (minutes)")
	if err != nil {
		return nil, err
	}
	s.TimeSpentMinutes = minutes

	if !s.IsCorrect {
		if s.ErrorMade, err = promptOptional("Error made"); err != nil {
			return nil, err
		}
		if s.LessonLearned, err = promptOptional("Lesson learned"); err != nil {
			return nil, err
		}
	}
	if s.KeywordsUsed, err = promptOptional("Keywords used (comma-separated)"); err != nil {
		return nil, err
	}
	if s.Notes, err = promptOptional("Notes"); err != nil {
		return nil, err
	}

	return &s, nil
}

func selectOne(label string, items []string) (string, error) {
	p := promptui.Select{Label: label, Items: items}
	_, v, err := p.Run()
	return v, err
}

func promptRequired(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(in string) error {
			if strings.TrimSpace(in) == "" {
				return errors.New("required")
			}
			return nil
		},
	}
	v, err := p.Run()
	return strings.TrimSpace(v), err
}

func promptOptional(label string) (string, error) {
	p := promptui.Prompt{Label: label}
	v, err := p.Run()
	return strings.TrimSpace(v), err
}

func promptMinutes(label string) (int, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(in string) error {
			n, err := strconv.Atoi(strings.TrimSpace(in))
			if err != nil || n < 0 {
				return errors.New("enter a non-negative number")
			}
			return nil
		},
	}
	v, err := p.Run()
	if err != nil {
		return 0, err
	}
	n, _ := strconv.Atoi(strings.TrimSpace(v))
	return n, nil
}
