package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"soilai/pkg/crop"
)

var errInputClosed = errors.New("input closed")

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// line prints label and reads one trimmed line. EOF after partial input still counts.
func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		if errors.Is(err, io.EOF) {
			return "", errInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// number asks until the answer parses as a float.
func (p *prompter) number(label string) (float64, error) {
	for {
		s, err := p.line(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "  %q is not a number, try again\n", s)
	}
}

// chooseCrop runs the crop selection flow. A recognized name is taken as is. Otherwise
// the prefix suggestions are listed and the operator picks one by number or types any
// other name, which is used as given. An empty answer keeps the original entry.
func (p *prompter) chooseCrop(v *crop.Validator, entered string) (string, error) {
	if v.IsValid(entered) {
		return crop.Normalize(entered), nil
	}
	sugg := v.Suggest(entered, crop.DefaultSuggestLimit)
	if len(sugg) == 0 {
		fmt.Fprintf(p.out, "Crop %q is not in the crop list.\n", entered)
		return entered, nil
	}

	fmt.Fprintf(p.out, "Crop %q not found. Did you mean:\n", entered)
	for i, s := range sugg {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, s)
	}
	ans, err := p.line("Pick a number, or type a crop name: ")
	if errors.Is(err, errInputClosed) {
		return entered, nil
	}
	if err != nil {
		return "", err
	}
	if ans == "" {
		return entered, nil
	}
	if n, err := strconv.Atoi(ans); err == nil {
		if n >= 1 && n <= len(sugg) {
			return sugg[n-1], nil
		}
		fmt.Fprintf(p.out, "  %d is not in the list, keeping %q\n", n, entered)
		return entered, nil
	}
	return ans, nil
}
