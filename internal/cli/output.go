package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tickergate/tickergate/internal/web/templates/components"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case Price:
		o.printPrice(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session response type (matches API)
type Session struct {
	Email         string `json:"email"`
	EstablishedAt int64  `json:"established_at"`
}

// Price response type
type Price struct {
	USD          float64 `json:"usd"`
	INR          float64 `json:"inr"`
	USDDirection string  `json:"usd_direction,omitempty"`
	INRDirection string  `json:"inr_direction,omitempty"`
	UpdatedAt    int64   `json:"updated_at,omitempty"`
	Countdown    int     `json:"countdown"`
	Failed       bool    `json:"failed,omitempty"`
	Live         bool    `json:"live"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Signed in as: %s\n", s.Email)
	established := time.UnixMilli(s.EstablishedAt)
	fmt.Printf("Session established: %s\n", established.Format("2006-01-02 15:04:05"))
}

func (o *Output) printPrice(p Price) {
	if p.Failed {
		fmt.Println("Ethereum (ETH): failed to load")
		return
	}
	if !p.Live {
		fmt.Println("Ethereum (ETH): waiting for first update")
		return
	}

	fmt.Printf("Ethereum (ETH): %s%s\n", components.FormatUSD(p.USD), directionArrow(p.USDDirection))
	fmt.Printf("               %s%s\n", components.FormatINR(p.INR), directionArrow(p.INRDirection))
	if p.UpdatedAt != 0 {
		updated := time.UnixMilli(p.UpdatedAt)
		fmt.Printf("Last updated: %s\n", updated.Format("15:04:05"))
	}
	fmt.Printf("Next update in: %ds\n", p.Countdown)
}

func directionArrow(direction string) string {
	switch direction {
	case "up":
		return " ↑"
	case "down":
		return " ↓"
	default:
		return ""
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
