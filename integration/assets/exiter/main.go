// exiter is placed inside test images. It is built statically so that it
// runs without any library in the image.
package main

import (
	"fmt"
	"os"
	"strconv"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(0)
	}

	switch os.Args[1] {
	case "exit":
		code, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(100)
		}
		os.Exit(code)

	case "cat":
		contents, err := os.ReadFile(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(100)
		}
		fmt.Print(string(contents))

	case "exists":
		if _, err := os.Stat(os.Args[2]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

	case "pid":
		fmt.Println(os.Getpid())

	case "env":
		fmt.Println(len(os.Environ()))

	case "pwd":
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(100)
		}
		fmt.Println(cwd)

	case "echo":
		for _, arg := range os.Args[2:] {
			fmt.Println(arg)
		}

	case "stderr":
		fmt.Fprintln(os.Stderr, os.Args[2])

	default:
		fmt.Fprintf(os.Stderr, "unknown action %s\n", os.Args[1])
		os.Exit(100)
	}
}
