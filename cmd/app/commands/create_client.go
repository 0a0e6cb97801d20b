package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
	authUseCase "github.com/allisson/webhooks/internal/auth/usecase"
)

var errNoInteractiveInput = errors.New("no input available for interactive mode")

// RunCreateClient registers an API client. policiesJSON holds a JSON array of policy documents;
// when it is empty the policies are read interactively from io.Reader. The plain secret is
// printed once and never stored.
func RunCreateClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	name string,
	isActive bool,
	policiesJSON string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	policies, err := readPolicies(policiesJSON, io)
	if err != nil {
		return err
	}

	logger.Info("creating client", slog.String("name", name), slog.Int("policy_count", len(policies)))

	output, err := clientUseCase.Create(ctx, &authDomain.CreateClientInput{
		Name:     name,
		IsActive: isActive,
		Policies: policies,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	logger.Info("client created",
		slog.String("client_id", output.ID.String()),
		slog.Bool("is_active", isActive),
	)

	if format == formatJSON {
		return writeJSON(io.Writer, map[string]string{
			"client_id": output.ID.String(),
			"secret":    output.PlainSecret,
		})
	}
	writeClientText(output, io.Writer)
	return nil
}

func readPolicies(policiesJSON string, io IOTuple) ([]authDomain.PolicyDocument, error) {
	var policies []authDomain.PolicyDocument

	if policiesJSON != "" {
		if err := json.Unmarshal([]byte(policiesJSON), &policies); err != nil {
			return nil, fmt.Errorf("failed to parse policies JSON: %w", err)
		}
	} else {
		if io.Reader == nil {
			return nil, errNoInteractiveInput
		}
		var err error
		p := &prompter{in: bufio.NewReader(io.Reader), out: io.Writer}
		if policies, err = p.policies(); err != nil {
			return nil, fmt.Errorf("failed to get policies: %w", err)
		}
	}

	if len(policies) == 0 {
		return nil, errors.New("at least one policy is required")
	}
	return policies, nil
}

// prompter asks questions on out and reads one line answers from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *prompter) say(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) ask(question string) (string, error) {
	p.say("%s: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) policies() ([]authDomain.PolicyDocument, error) {
	p.say("\nEnter policies for the client\nAvailable capabilities: %s\n",
		joinCapabilities(authDomain.Capabilities))

	var policies []authDomain.PolicyDocument
	for {
		p.say("\nPolicy #%d\n", len(policies)+1)

		path, err := p.ask("Path pattern (e.g. '/v1/webhooks/*' or '*')")
		if err != nil {
			return nil, fmt.Errorf("failed to read path: %w", err)
		}
		if path == "" {
			return nil, errors.New("path cannot be empty")
		}

		answer, err := p.ask("Capabilities, comma separated (e.g. 'read,trigger')")
		if err != nil {
			return nil, fmt.Errorf("failed to read capabilities: %w", err)
		}
		capabilities, err := parseCapabilities(answer)
		if err != nil {
			return nil, err
		}

		policies = append(policies, authDomain.PolicyDocument{Path: path, Capabilities: capabilities})

		more, err := p.ask("Add another policy? (y/n)")
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		if more = strings.ToLower(more); more != "y" && more != "yes" {
			return policies, nil
		}
	}
}

// parseCapabilities splits a comma separated list, dropping blanks. Unknown names are left for
// the use case to reject.
func parseCapabilities(input string) ([]authDomain.Capability, error) {
	var capabilities []authDomain.Capability
	for _, name := range strings.Split(input, ",") {
		if name = strings.TrimSpace(name); name != "" {
			capabilities = append(capabilities, authDomain.Capability(name))
		}
	}
	if len(capabilities) == 0 {
		return nil, errors.New("at least one capability is required")
	}
	return capabilities, nil
}

func joinCapabilities(capabilities []authDomain.Capability) string {
	names := make([]string, len(capabilities))
	for i, capability := range capabilities {
		names[i] = string(capability)
	}
	return strings.Join(names, ", ")
}

func writeClientText(output *authDomain.CreateClientOutput, w io.Writer) {
	_, _ = fmt.Fprintf(w, "\nClient created\nClient ID: %s\nSecret: %s\n", output.ID, output.PlainSecret)
	_, _ = fmt.Fprintln(w, "\nThe secret is shown only once. Store it securely.")
}
