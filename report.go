package main

import (
	"fmt"
	"io"
	"os"

	yml "gopkg.in/yaml.v3"

	svnlook "github.com/kfsone/svnlook-go/lib"
)

// changeRecord is the yaml rendering of one change.
type changeRecord struct {
	Status  string `yaml:"status"`
	Path    string `yaml:"path"`
	From    string `yaml:"from,omitempty"`
	FromRev int    `yaml:"from-revision,omitempty"`
}

// revisionRecord is the yaml rendering of one revision report.
type revisionRecord struct {
	Revision  int            `yaml:"revision"`
	Committer string         `yaml:"committer,omitempty"`
	Date      string         `yaml:"date,omitempty"`
	Message   string         `yaml:"message,omitempty"`
	Changes   []changeRecord `yaml:"changes"`
}

func newChangeRecord(change *svnlook.Change) changeRecord {
	record := changeRecord{
		Status: change.Status.String(),
		Path:   change.Path,
	}
	if change.From != nil {
		record.From = change.From.Path
		record.FromRev = change.From.Revision
	}
	return record
}

func newRevisionRecord(info *svnlook.Info) revisionRecord {
	return revisionRecord{
		Revision:  info.Revision,
		Committer: info.Committer,
		Date:      info.Date.Format("2006-01-02 15:04:05 -0700"),
		Message:   info.Message,
	}
}

// writeYaml emits one record as a yaml document with the indenting used
// throughout the tool's output.
func writeYaml(w io.Writer, v any) error {
	enc := yml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func printInfo(info *svnlook.Info) {
	fmt.Printf("Revision r%d, by %s at %s\n",
		info.Revision, info.Committer, info.Date.Format("2006-01-02 15:04:05 -0700"))
}

func printChange(change *svnlook.Change) {
	fmt.Printf("   %-8.8s: ", change.Status)
	if change.From != nil {
		fmt.Printf("%s@r%d -> %s\n", change.From.Path, change.From.Revision, change.Path)
	} else {
		fmt.Println(change.Path)
	}
}

// emitChanges drains an iterator, printing or collecting records. Any
// error ends the report: the iterator itself could continue past a bad
// record, but the driver treats the first failure as fatal for the
// revision being reported.
func emitChanges(it *svnlook.ChangedIter, revision int) error {
	var records []changeRecord

	for {
		change, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if asYaml {
			records = append(records, newChangeRecord(change))
		} else {
			printChange(change)
		}
	}

	if asYaml {
		return writeYaml(os.Stdout, revisionRecord{Revision: revision, Changes: records})
	}
	return nil
}
