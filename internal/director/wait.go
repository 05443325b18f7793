package director

// execWait idles for the command's duration. No side effects.
func execWait(ec *Context, deps *Deps, cmd Command) Outcome {
	w := cmd.Wait
	if w == nil {
		return Skipped("wait command missing payload")
	}
	<-deps.Tween.After(seconds(w.Duration)).Done()
	return Completed()
}
