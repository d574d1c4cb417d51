// Package graph is the node-graph editor core: nodes with labeled sockets,
// links drawn as cubic curves between socket anchors, and the canvas that
// owns them together with its transform space and drag session.
//
// The package never measures or draws anything itself. Live socket positions
// come from an injected Measurer and visual updates go to a Renderer.
package graph
