package cmd

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func TestValidateFilenames(t *testing.T) {
	cmd := &cobra.Command{}

	testCases := []struct {
		Name string
		Args []string
		Err  bool
	}{
		{
			Name: "Markdown",
			Args: []string{"pets.md", "notes.markdown"},
		},
		{
			Name: "Remote",
			Args: []string{"https://api.example.com/graphql", "wss://api.example.com/graphql"},
		},
		{
			Name: "NotMarkdown",
			Args: []string{"schema.gql"},
			Err:  true,
		},
		{
			Name: "NoExtension",
			Args: []string{"pets"},
			Err:  true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			err := validateFilenames(cmd, testCase.Args)
			if (err != nil) != testCase.Err {
				subT.Fatalf("unexpected error when validating filenames: %s", err)
			}
		})
	}
}

func TestValidateTypes(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().StringSlice("types", []string{"scalars.md", "https://api.example.com/graphql"}, "")

	if err := validateTypes(cmd, nil); err != nil {
		t.Errorf("unexpected error when validating types: %s", err)
		return
	}

	bad := &cobra.Command{}
	bad.Flags().StringSlice("types", []string{"schema.gql"}, "")

	if err := validateTypes(bad, nil); err == nil {
		t.Fail()
	}
}

var (
	aDir = "a"
	bDir = "b"
)

func TestInitGenDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	gens := []string{aDir, bDir}

	err := initGenDirs(fs, &gens)(nil, nil)
	if err != nil {
		t.Error(err)
		return
	}

	b, err := afero.DirExists(fs, "a")
	if !b || err != nil {
		t.Fail()
		return
	}

	b, err = afero.DirExists(fs, "b")
	if !b || err != nil {
		t.Fail()
		return
	}
}
