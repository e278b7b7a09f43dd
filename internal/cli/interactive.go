package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/volleyhttp/volley/internal/config"
)

// interactiveSetup prompts for test parameters on the terminal, for users
// who would rather not assemble flags. Invalid numeric or JSON input falls
// back to the default with a warning rather than aborting; only a missing
// URL is fatal, and that is caught by the shared validator afterward.
func interactiveSetup(in io.Reader, out io.Writer) (*config.RequestConfig, error) {
	reader := bufio.NewReader(in)
	cfg := config.NewRequestConfig()

	fmt.Fprintln(out, "API Stress Test Tool")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	cfg.URL = prompt(reader, out, "Enter API URL (e.g., https://api.example.com/users): ")

	if method := prompt(reader, out, fmt.Sprintf("Enter HTTP method [%s]: ", config.DefaultMethod)); method != "" {
		cfg.Method = strings.ToUpper(method)
	}

	if raw := prompt(reader, out, fmt.Sprintf("Number of concurrent requests [%d]: ", config.DefaultRequests)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.Requests = n
		} else {
			fmt.Fprintf(out, "Invalid number, using default (%d)\n", config.DefaultRequests)
		}
	}

	if raw := prompt(reader, out, fmt.Sprintf("Request timeout in seconds [%d]: ", config.DefaultTimeout)); raw != "" {
		if t, err := strconv.Atoi(raw); err == nil {
			cfg.Timeout = t
		} else {
			fmt.Fprintf(out, "Invalid timeout, using default (%d)\n", config.DefaultTimeout)
		}
	}

	if raw := prompt(reader, out, "Headers in JSON format (optional, press Enter to skip): "); raw != "" {
		if headers, err := config.ParseHeaders(raw); err == nil {
			cfg.Headers = headers
		} else {
			fmt.Fprintln(out, "Invalid JSON format for headers, skipping...")
		}
	}

	switch cfg.Method {
	case "POST", "PUT", "PATCH":
		if raw := prompt(reader, out, "Request body data in JSON format (optional, press Enter to skip): "); raw != "" {
			if body, err := config.ParseBody(raw); err == nil {
				cfg.Body = body
			} else {
				fmt.Fprintln(out, "Invalid JSON format for data, skipping...")
			}
		}
	}

	return cfg, nil
}

// prompt prints a question and returns the trimmed answer; EOF yields "".
func prompt(reader *bufio.Reader, out io.Writer, question string) string {
	fmt.Fprint(out, question)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
