// Package model defines the core value types shared across ngramgo packages.
package model
