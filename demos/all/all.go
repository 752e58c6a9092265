// Package all registers every demo. Import it for its side effects:
//
//	import _ "github.com/gogpu/fundamentals/demos/all"
package all

import (
	_ "github.com/gogpu/fundamentals/demos/basic2d"     // register basic2d
	_ "github.com/gogpu/fundamentals/demos/cube"        // register cube
	_ "github.com/gogpu/fundamentals/demos/matrices"    // register matrices
	_ "github.com/gogpu/fundamentals/demos/rectangles"  // register rectangles
	_ "github.com/gogpu/fundamentals/demos/rotation"    // register rotation
	_ "github.com/gogpu/fundamentals/demos/rotation2d"  // register rotation2d
	_ "github.com/gogpu/fundamentals/demos/translation" // register translation
	_ "github.com/gogpu/fundamentals/demos/triangle"    // register triangle
)
