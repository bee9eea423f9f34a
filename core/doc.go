// Package core contains the shared contracts, configuration, and error
// envelope for the apikit building blocks. Leaf packages depend on core;
// core must not depend on any of them.
package core
