// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services never import adapters; document formats, embedding
// providers and report storage are reached through driven ports.
package services
