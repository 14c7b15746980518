package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"calc/expression"
	"calc/remote"
	"calc/verify"
)

var (
	prometheusUrl *string
	configFile    *string
	permissive    *bool
	verifyResults *bool
)

func init() {
	prometheusUrl = flag.String("prometheus.url", "", "prometheus http url, results are remote written when set")
	configFile = flag.String("config.file", "", "config file with expressions to evaluate")
	permissive = flag.Bool("permissive", false, "skip unknown characters instead of failing")
	verifyResults = flag.Bool("verify", false, "cross check results against the lua reference evaluator")
}

type calculator struct {
	scanner *expression.Scanner
	verify  bool
}

func (c *calculator) calculate(input string) (expression.Postfix, float64, error) {
	evaluation, err := c.scanner.Process(input)
	if err != nil {
		return nil, 0, err
	}
	if c.verify {
		err := verify.Check(evaluation.Tokens, evaluation.Value)
		if errors.Is(err, verify.ErrUnavailable) {
			log.Printf("skipping verification of %q: %v", input, err)
		} else if err != nil {
			return nil, 0, errors.Wrap(err, "verification failed")
		}
	}
	return evaluation.Postfix, evaluation.Value, nil
}

func formatResult(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// interactive prompts for one expression like a desk calculator.
func interactive(c *calculator, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Enter an expression:")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return errors.Wrap(err, "read expression")
	}

	postfix, result, err := c.calculate(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nPostfix: %v\n", postfix)
	fmt.Fprintf(out, "\nResult: %v\n", formatResult(result))
	return nil
}

func arguments(c *calculator, args []string, out io.Writer) error {
	for _, arg := range args {
		postfix, result, err := c.calculate(arg)
		if err != nil {
			return errors.Wrapf(err, "expression %q", arg)
		}
		fmt.Fprintln(out, postfix)
		fmt.Fprintln(out, formatResult(result))
	}
	return nil
}

func batch(c *calculator, root *ConfigRoot, now time.Time) ([]remote.Result, error) {
	var results []remote.Result
	for _, entry := range root.Expressions {
		series, err := entry.series()
		if err != nil {
			return nil, err
		}
		postfix, value, err := c.calculate(entry.Expression)
		if err != nil {
			return nil, errors.Wrapf(err, "expression %q", entry.Expression)
		}
		log.Printf("%s = %s (postfix: %v)", entry.Expression, formatResult(value), postfix)
		results = append(results, remote.Result{
			Series:    series,
			Value:     value,
			Timestamp: now.UnixMilli(),
		})
	}
	return results, nil
}

// checkModes rejects flag combinations that would silently drop input.
func checkModes(configFile, prometheusUrl string, args []string) error {
	if configFile == "" && prometheusUrl != "" {
		return errors.New("prometheus.url requires config.file")
	}
	if configFile != "" && len(args) > 0 {
		return errors.Errorf("config.file cannot be combined with expression arguments %q", args)
	}
	return nil
}

func main() {
	flag.Parse()

	if err := checkModes(*configFile, *prometheusUrl, flag.Args()); err != nil {
		log.Fatalf("error: %v", err)
	}

	c := &calculator{
		scanner: &expression.Scanner{Permissive: *permissive},
		verify:  *verifyResults,
	}

	if *configFile == "" {
		var err error
		if flag.NArg() > 0 {
			err = arguments(c, flag.Args(), os.Stdout)
		} else {
			err = interactive(c, os.Stdin, os.Stdout)
		}
		if err != nil {
			log.Fatalf("error: %v", err)
		}
		return
	}

	root, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	c.scanner.Permissive = c.scanner.Permissive || root.Permissive
	c.verify = c.verify || root.Verify

	results, err := batch(c, root, time.Now())
	if err != nil {
		log.Fatalf("error: %v", err)
	}

	if *prometheusUrl == "" {
		return
	}

	writer, err := remote.NewWriter(*prometheusUrl)
	if err != nil {
		log.Fatalf("error: %v", err)
	}
	if err := writer.Write(context.Background(), results); err != nil {
		log.Fatalf("error writing results to %s: %v", writer.URL(), err)
	}
	log.Printf("wrote %d results to %s", len(results), writer.URL())
}
