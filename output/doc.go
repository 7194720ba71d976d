// SPDX-License-Identifier: EPL-2.0

// Package output renders an engine.Context to the sound card.
package output
