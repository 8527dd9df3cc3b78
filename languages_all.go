package main

// Import all language packages to register them
import (
	_ "github.com/roveo/topo-context/languages/golang"
	_ "github.com/roveo/topo-context/languages/python"
	_ "github.com/roveo/topo-context/languages/rust"
	_ "github.com/roveo/topo-context/languages/typescript"
)
