// Package template defines the evaluator seam the view renderer relies on.
// Engines implement Evaluator; the renderer hands them a scope whose
// ReceiverKey entry is a View so templates can call back into rendering.
package template
