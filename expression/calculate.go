package expression

// Evaluation is the outcome of one pipeline run.
type Evaluation struct {
	Tokens  TokenList
	Postfix Postfix
	Value   float64
}

// Calculate runs the whole pipeline with a strict scanner.
func Calculate(input string) (Postfix, float64, error) {
	return NewScanner().Calculate(input)
}

// Calculate is Process without the infix tokens.
func (s *Scanner) Calculate(input string) (Postfix, float64, error) {
	evaluation, err := s.Process(input)
	if err != nil {
		return nil, 0, err
	}
	return evaluation.Postfix, evaluation.Value, nil
}

// Process tokenizes input with the scanner's policy, converts it to
// postfix and evaluates it. Any failure aborts the call.
func (s *Scanner) Process(input string) (*Evaluation, error) {
	tokens, err := s.Scan(input)
	if err != nil {
		return nil, err
	}

	postfix, err := ToPostfix(tokens)
	if err != nil {
		return nil, err
	}

	value, err := Evaluate(postfix)
	if err != nil {
		return nil, err
	}
	return &Evaluation{
		Tokens:  tokens,
		Postfix: postfix,
		Value:   value,
	}, nil
}
