package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/brettbedarf/yshell/filesystem"
)

// CommandFn runs one command. args excludes the command name. Called with
// the shell lock held.
type CommandFn func(s *Shell, args []string) error

func builtinCommands() map[string]CommandFn {
	return map[string]CommandFn{
		"cat":    fnCat,
		"cd":     fnCd,
		"echo":   fnEcho,
		"exit":   fnExit,
		"find":   fnFind,
		"ls":     fnLs,
		"lsr":    fnLsr,
		"make":   fnMake,
		"mkdir":  fnMkdir,
		"prompt": fnPrompt,
		"pwd":    fnPwd,
		"quit":   fnExit,
		"rm":     fnRm,
		"rmr":    fnRmr,
		"stat":   fnStat,
	}
}

func fnCat(s *Shell, args []string) error {
	if len(args) == 0 {
		return &UsageError{Cmd: "cat", Cause: "missing operand"}
	}
	for _, path := range args {
		n, err := s.ns.Resolve(path, nil)
		if err != nil {
			return err
		}
		if n.IsDir() {
			return &filesystem.PathError{Op: "cat", Path: path, Err: filesystem.ErrWrongKind}
		}
		words, err := n.Read()
		if err != nil {
			return err
		}
		s.println(strings.Join(words, " "))
	}
	return nil
}

func fnCd(s *Shell, args []string) error {
	switch len(args) {
	case 0:
		return s.ns.SetCurrentDirectory(s.ns.Root())
	case 1:
		n, err := s.ns.Resolve(args[0], nil)
		if err != nil {
			return err
		}
		return s.ns.SetCurrentDirectory(n)
	default:
		return &UsageError{Cmd: "cd", Cause: "too many arguments"}
	}
}

func fnEcho(s *Shell, args []string) error {
	s.println(strings.Join(args, " "))
	return nil
}

func fnExit(s *Shell, args []string) error {
	s.exiting = true
	if len(args) == 0 {
		return nil
	}
	code, err := strconv.Atoi(args[0])
	if err != nil {
		code = ExitStatusInvalid
	}
	s.exitStatus = code
	return nil
}

func fnFind(s *Shell, args []string) error {
	var dirPath, pattern string
	switch len(args) {
	case 1:
		dirPath, pattern = filesystem.DotName, args[0]
	case 2:
		dirPath, pattern = args[0], args[1]
	default:
		return &UsageError{Cmd: "find", Cause: "usage: find [dir] pattern"}
	}
	dir, err := s.ns.ResolveDir(dirPath, nil)
	if err != nil {
		return err
	}
	matches, err := s.ns.Find(dir, pattern)
	if err != nil {
		return err
	}
	for _, n := range matches {
		s.println(s.ns.PathOf(n))
	}
	return nil
}

func fnLs(s *Shell, args []string) error {
	return forEachPath(args, func(path string) error {
		n, err := s.ns.Resolve(path, nil)
		if err != nil {
			return err
		}
		if !n.IsDir() {
			s.println(s.ns.FormatEntry(n))
			return nil
		}
		lines, err := s.ns.List(n)
		if err != nil {
			return err
		}
		s.println(s.ns.PathOf(n) + ":")
		s.printLines(lines)
		return nil
	})
}

func fnLsr(s *Shell, args []string) error {
	return forEachPath(args, func(path string) error {
		n, err := s.ns.Resolve(path, nil)
		if err != nil {
			return err
		}
		if !n.IsDir() {
			s.println(s.ns.FormatEntry(n))
			return nil
		}
		lines, err := s.ns.ListRecursive(n)
		if err != nil {
			return err
		}
		s.printLines(lines)
		return nil
	})
}

// fnMake creates a file, or replaces the words of an existing one
func fnMake(s *Shell, args []string) error {
	if len(args) == 0 {
		return &UsageError{Cmd: "make", Cause: "missing operand"}
	}
	dir, name, err := s.ns.ResolveParent(args[0], nil)
	if err != nil {
		return err
	}
	n, err := s.ns.MakeFile(dir, name)
	if err != nil {
		if !errors.Is(err, filesystem.ErrAlreadyExists) || n.IsDir() {
			return err
		}
	}
	return n.Write(args[1:])
}

func fnMkdir(s *Shell, args []string) error {
	if len(args) != 1 {
		return &UsageError{Cmd: "mkdir", Cause: "exactly one operand required"}
	}
	dir, name, err := s.ns.ResolveParent(args[0], nil)
	if err != nil {
		return err
	}
	_, err = s.ns.MakeDirectory(dir, name)
	return err
}

func fnPrompt(s *Shell, args []string) error {
	if len(args) == 0 {
		return &UsageError{Cmd: "prompt", Cause: "missing operand"}
	}
	s.prompt = strings.Join(args, " ")
	return nil
}

func fnPwd(s *Shell, args []string) error {
	s.println(s.ns.PathOf(s.ns.CurrentDirectory()))
	return nil
}

func fnRm(s *Shell, args []string) error {
	return removePath(s, "rm", args, s.ns.Remove)
}

func fnRmr(s *Shell, args []string) error {
	return removePath(s, "rmr", args, s.ns.RemoveRecursive)
}

func removePath(s *Shell, cmd string, args []string, remove func(*filesystem.Node, string) error) error {
	if len(args) != 1 {
		return &UsageError{Cmd: cmd, Cause: "exactly one operand required"}
	}
	dir, name, err := s.ns.ResolveParent(args[0], nil)
	if err != nil {
		return err
	}
	return remove(dir, name)
}

func fnStat(s *Shell, args []string) error {
	if len(args) == 0 {
		return &UsageError{Cmd: "stat", Cause: "missing operand"}
	}
	for _, path := range args {
		n, err := s.ns.Resolve(path, nil)
		if err != nil {
			return err
		}
		attr := s.ns.Attr(n)
		s.println(fmt.Sprintf("%d  %s  size=%d  nlink=%d  %s",
			attr.Ino, n.Kind(), attr.Size, attr.Nlink, s.ns.PathOf(n)))
	}
	return nil
}

// forEachPath calls fn for each path, or for "." when none are given
func forEachPath(args []string, fn func(path string) error) error {
	if len(args) == 0 {
		args = []string{filesystem.DotName}
	}
	for _, path := range args {
		if err := fn(path); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) printLines(lines []string) {
	for _, line := range lines {
		s.println(line)
	}
}
