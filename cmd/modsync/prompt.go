package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/conn-castle/modsync/internal/messages"
)

// promptYesNo asks a yes/no question on out and reads the answer from in.
// An empty answer selects the default; EOF without an answer means no.
func promptYesNo(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	reader := bufio.NewReader(in)
	for {
		format := messages.PromptNoDefaultFmt
		if defaultYes {
			format = messages.PromptYesDefaultFmt
		}
		if _, err := fmt.Fprintf(out, format, prompt); err != nil {
			return false, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return defaultYes, nil
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf(messages.PromptInvalidResponseFmt, response)
		}
		if _, err := fmt.Fprintln(out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}

// printList prints a header followed by one indented line per item.
func printList(out io.Writer, header string, items []string) error {
	if len(items) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out, header); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(out, messages.ListItemFmt, item); err != nil {
			return err
		}
	}
	return nil
}
