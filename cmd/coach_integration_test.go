package cmd

import (
	"os"
	"syscall"
	"testing"
	"time"
)

func TestCoachCommandStopsOnInterrupt(t *testing.T) {
	tmp := t.TempDir()

	rootCmd.SetArgs([]string{
		"coach",
		"--io-dir", tmp,
		"--poll-ms", "5",
		"--offline",
	})

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = syscall.Kill(os.Getpid(), syscall.SIGINT)
	}()

	done := make(chan error, 1)
	go func() { done <- rootCmd.Execute() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("coach command returned an error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("coach command did not stop after SIGINT")
	}
}
