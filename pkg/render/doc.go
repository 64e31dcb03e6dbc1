// Package render implements the view renderer: it resolves template names
// against a base path, evaluates them with globals merged under call data,
// and decorates the outermost output of each render tree with a layout.
//
// Templates reach back into the renderer through the Scope they receive
// under template.ReceiverKey. Changes made there (SetLayout, SetGlobal, ...)
// last only until the render tree completes, while the same calls on the
// Renderer persist across renders.
package render
