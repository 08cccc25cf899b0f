package actions

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
)

var ErrInterrupted = errors.New("interrupted")

var stopFlag int32

func HandleSignals() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\n[signal] Received interrupt, stopping before the next write...")
		atomic.StoreInt32(&stopFlag, 1)
	}()
}

func Interrupted() bool {
	return atomic.LoadInt32(&stopFlag) != 0
}

func PromptInt(prompt string) int {
	for {
		if Interrupted() {
			fmt.Println("\n[info] Interrupt received, exiting prompt.")
			os.Exit(130)
		}
		fmt.Print(prompt)
		var input string
		_, err := fmt.Scanln(&input)
		if err != nil {
			return -1
		}
		if input == "" {
			return -1
		}
		var val int
		_, err = fmt.Sscanf(input, "%d", &val)
		if err == nil && val >= 0 {
			return val
		}
		fmt.Println("Enter a non-negative integer or press Enter for default.")
	}
}

func PromptString(prompt string) string {
	if Interrupted() {
		fmt.Println("\n[info] Interrupt received, exiting prompt.")
		os.Exit(130)
	}
	fmt.Print(prompt)
	var val string
	_, _ = fmt.Scanln(&val)
	return strings.TrimSpace(val)
}

func PromptBool(prompt string, def bool) bool {
	if Interrupted() {
		fmt.Println("\n[info] Interrupt received, exiting prompt.")
		os.Exit(130)
	}
	fmt.Print(prompt)
	var val string
	_, _ = fmt.Scanln(&val)
	val = strings.ToLower(strings.TrimSpace(val))
	if val == "" {
		return def
	}
	if val == "y" || val == "yes" || val == "1" || val == "true" {
		return true
	}
	if val == "n" || val == "no" || val == "0" || val == "false" {
		return false
	}
	fmt.Println("[warn] Invalid boolean input, using default.")
	return def
}

func WasFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// resolveString reports where value came from and prompts for it when the
// flag was not given on the command line.
func resolveString(name string, value string, def string, interactive bool) string {
	if WasFlagPassed(name) {
		if value == "" {
			value = def
		}
		fmt.Printf("[info] using flag -%s=%s\n", name, value)
		return value
	}
	if interactive {
		if in := PromptString(fmt.Sprintf("%s (-%s, default %s): ", name, name, valueOr(value, def))); in != "" {
			fmt.Printf("[info] using input -%s=%s\n", name, in)
			return in
		}
	}
	value = valueOr(value, def)
	fmt.Printf("[info] using default -%s=%s\n", name, value)
	return value
}

func resolveInt(name string, value int, interactive bool) int {
	if WasFlagPassed(name) {
		fmt.Printf("[info] using flag -%s=%d\n", name, value)
		return value
	}
	if interactive {
		if in := PromptInt(fmt.Sprintf("%s (-%s, default %d): ", name, name, value)); in >= 0 {
			fmt.Printf("[info] using input -%s=%d\n", name, in)
			return in
		}
	}
	fmt.Printf("[info] using default -%s=%d\n", name, value)
	return value
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
