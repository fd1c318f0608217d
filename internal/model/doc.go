// Package model defines the data structures shared across the application:
// configuration, setup run records and cached datasets.
package model
