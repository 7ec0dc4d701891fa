package reasoning

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// toolFunc executes one named tool against its raw argument list.
type toolFunc func(args []string) (string, error)

var callPattern = regexp.MustCompile(`^\s*([a-z_]+\.[a-z_]+)\s*\((.*)\)\s*$`)

// ToolDescriptions lists every tool for the reasoning prompt.
func ToolDescriptions() string {
	return strings.Join([]string{
		"MATH TOOLS:",
		"- math.add(a, b) - Add two numbers",
		"- math.subtract(a, b) - Subtract b from a",
		"- math.multiply(a, b) - Multiply two numbers",
		"- math.divide(a, b) - Divide a by b",
		"- math.square_root(number) - Calculate square root",
		"- math.average(n1, n2, ...) - Calculate average of numbers",
		"- math.power(base, exponent) - Raise base to power",
		"",
		"STRING TOOLS:",
		"- string.count_vowels(text) - Count vowels in text",
		"- string.count_letters(text) - Count letters in text",
		"- string.count_words(text) - Count words in text",
		"- string.count_consonants(text) - Count consonants in text",
	}, "\n")
}

// Dispatch parses a call of the form name(args) and executes it. The call
// string comes from a language model, so parsing is deliberately lenient:
// quotes around string arguments are optional.
func Dispatch(call string) (string, error) {
	match := callPattern.FindStringSubmatch(call)
	if match == nil {
		return "", fmt.Errorf("unparseable tool call %q", call)
	}

	name, rawArgs := match[1], match[2]
	tool, ok := tools()[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	if strings.HasPrefix(name, "string.") {
		// String tools take the whole argument verbatim.
		return tool([]string{unquote(rawArgs)})
	}

	args := splitArgs(rawArgs)
	return tool(args)
}

func tools() map[string]toolFunc {
	return map[string]toolFunc{
		"math.add":         binaryOp(func(a, b float64) (float64, error) { return a + b, nil }),
		"math.subtract":    binaryOp(func(a, b float64) (float64, error) { return a - b, nil }),
		"math.multiply":    binaryOp(func(a, b float64) (float64, error) { return a * b, nil }),
		"math.divide":      binaryOp(divide),
		"math.power":       binaryOp(func(a, b float64) (float64, error) { return math.Pow(a, b), nil }),
		"math.square_root": squareRoot,
		"math.average":     average,

		"string.count_vowels":     countClass(isVowel),
		"string.count_consonants": countClass(isConsonant),
		"string.count_letters":    countClass(unicode.IsLetter),
		"string.count_words":      countWords,
	}
}

func binaryOp(op func(a, b float64) (float64, error)) toolFunc {
	return func(args []string) (string, error) {
		if len(args) != 2 {
			return "", fmt.Errorf("expected 2 numeric arguments, got %d", len(args))
		}
		a, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return "", fmt.Errorf("bad argument %q: %w", args[0], err)
		}
		b, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return "", fmt.Errorf("bad argument %q: %w", args[1], err)
		}
		v, err := op(a, b)
		if err != nil {
			return "", err
		}
		return formatNumber(v), nil
	}
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a / b, nil
}

func squareRoot(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected 1 numeric argument, got %d", len(args))
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", fmt.Errorf("bad argument %q: %w", args[0], err)
	}
	if v < 0 {
		return "", errors.New("square root of a negative number")
	}
	return formatNumber(math.Sqrt(v)), nil
}

func average(args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("average needs at least one number")
	}
	sum := 0.0
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return "", fmt.Errorf("bad argument %q: %w", arg, err)
		}
		sum += v
	}
	return formatNumber(sum / float64(len(args))), nil
}

func countClass(match func(rune) bool) toolFunc {
	return func(args []string) (string, error) {
		if len(args) != 1 {
			return "", errors.New("expected 1 text argument")
		}
		count := 0
		for _, r := range args[0] {
			if match(r) {
				count++
			}
		}
		return strconv.Itoa(count), nil
	}
}

func countWords(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("expected 1 text argument")
	}
	return strconv.Itoa(len(strings.Fields(args[0]))), nil
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiouAEIOU", r)
}

func isConsonant(r rune) bool {
	return unicode.IsLetter(r) && !isVowel(r)
}

func splitArgs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	// Bracketed lists like [1, 2, 3] flatten into plain arguments.
	raw = strings.NewReplacer("[", "", "]", "").Replace(raw)
	parts := strings.Split(raw, ",")
	args := make([]string, 0, len(parts))
	for _, part := range parts {
		args = append(args, strings.TrimSpace(part))
	}
	return args
}

func unquote(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 {
		if (raw[0] == '"' && raw[len(raw)-1] == '"') || (raw[0] == '\'' && raw[len(raw)-1] == '\'') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
