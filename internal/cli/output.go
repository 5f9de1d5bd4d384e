package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
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
	case AuthResult:
		o.printAuthResult(v)
	case Balance:
		o.printBalance(v)
	case Session:
		o.printSession(v)
	case SessionList:
		o.printSessionList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult response type (matches API)
type AuthResult struct {
	Account   string    `json:"account"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Balance response type
type Balance struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}

// PlayerSlot response type
type PlayerSlot struct {
	Player   string    `json:"player"`
	Team     int       `json:"team"`
	Spawns   uint16    `json:"spawns"`
	Kills    uint16    `json:"kills"`
	JoinedAt time.Time `json:"joined_at"`
}

// Session response type
type Session struct {
	ID           string       `json:"id"`
	Authority    string       `json:"authority"`
	BetAmount    uint64       `json:"bet_amount"`
	Mode         string       `json:"mode"`
	State        string       `json:"state"`
	VaultAddress string       `json:"vault_address"`
	VaultBalance uint64       `json:"vault_balance"`
	Slots        []PlayerSlot `json:"slots"`
}

// SessionList response type
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Account: %s\n", a.Account)
	fmt.Printf("Token: %s\n", a.Token)
	fmt.Printf("Expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printBalance(b Balance) {
	fmt.Printf("Account: %s\n", b.Account)
	fmt.Printf("Balance: %d\n", b.Balance)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Authority: %s\n", s.Authority)
	fmt.Printf("Mode: %s\n", s.Mode)
	fmt.Printf("State: %s\n", s.State)
	fmt.Printf("Bet: %d\n", s.BetAmount)
	fmt.Printf("Vault: %s (%d)\n", s.VaultAddress, s.VaultBalance)
	fmt.Printf("Players (%d):\n", len(s.Slots))
	for _, slot := range s.Slots {
		fmt.Printf("  - %s (team %d, %d spawns, %d kills)\n", slot.Player, slot.Team, slot.Spawns, slot.Kills)
	}
}

func (o *Output) printSessionList(l SessionList) {
	if len(l.Sessions) == 0 {
		fmt.Println("No sessions")
		return
	}
	for _, s := range l.Sessions {
		fmt.Printf("%s  %s  %s  bet=%d  vault=%d  players=%d\n",
			s.ID, s.Mode, s.State, s.BetAmount, s.VaultBalance, len(s.Slots))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
