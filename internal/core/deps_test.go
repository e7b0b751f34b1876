package core

import (
	"testing"

	"prism/testutil"
)

func TestCoreStaysBelowPresentation(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.PresentationImportForbidden, "core must not depend on view, config or cmd")
}
