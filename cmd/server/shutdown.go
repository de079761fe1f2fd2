package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

// resource is a backing connection released once the server has drained.
type resource struct {
	name  string
	close func() error
}

// drainThenClose builds a single shutdown operation: the HTTP server stops
// accepting and finishes in-flight requests before any resource is closed.
// Resources close in the order given.
func drainThenClose(shutdownServer func(ctx context.Context) error, resources ...resource) gfshutdown.Operation {
	return func(ctx context.Context) error {
		log.Println("Shutting down HTTP server...")
		var errs []error
		if err := shutdownServer(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http-server: %w", err))
		}
		for _, r := range resources {
			log.Printf("Closing %s...", r.name)
			if err := r.close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
			}
		}
		return errors.Join(errs...)
	}
}
