package target

// ParseSelector scans a flat argument list for the target selector flags,
// returning the selected target name (or empty) and the remaining arguments
// in their original order. "--target <name>" picks an explicit target and
// "--self" picks the default one. The name is not validated here; Resolve
// does that.
func (r *Resolver) ParseSelector(args []string) (string, []string) {
	var selected string
	remaining := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--target" && i+1 < len(args):
			selected = args[i+1]
			i++
		case args[i] == "--self":
			if selected == "" {
				selected = r.defaultTarget
			}
		default:
			remaining = append(remaining, args[i])
		}
	}

	return selected, remaining
}
