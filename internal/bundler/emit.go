package bundler

import (
	"io"
)

// Preamble defines the module registry, the value cache and the memoizing
// require override that every bundle starts with.
const Preamble = `--[[Generated with Jade (https://github.com/JaRoLoz)]]
local ____bundle__dict, ____bundle__cache = {}, {}
require = function(module)
    if ____bundle__cache[module] then
        return ____bundle__cache[module]
    end
    local module_func = ____bundle__dict[module]()
    ____bundle__cache[module] = module_func
    return module_func
end
`

// Emit writes the bundle for g: the preamble, one registry entry per module
// in sorted id order, then the entrypoint source verbatim.
func Emit(w io.Writer, g *Graph) error {
	if _, err := io.WriteString(w, Preamble); err != nil {
		return err
	}

	for _, id := range g.IDs() {
		src, err := g.Modules[id].Contents()
		if err != nil {
			return err
		}
		if err := writeEntry(w, id, src); err != nil {
			return err
		}
	}

	main, err := g.Main.Contents()
	if err != nil {
		return err
	}
	_, err = w.Write(main)
	return err
}

func writeEntry(w io.Writer, id string, src []byte) error {
	if _, err := io.WriteString(w, "____bundle__dict[\""+id+"\"] = function()\n"); err != nil {
		return err
	}
	if _, err := w.Write(src); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\nend\n")
	return err
}
