// Copyright 2025 The WordFix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordfix command line tool and IPC server.

wordfix corrects known multi-token errors in text: typos, slang and
transliteration artifacts. Corrections come from a rule file with one rule per
line, the wrong phrase and its correction separated by a tab:

	be cuz	because
	gonna	will
	u	you

Phrases are split into tokens on runs of non-word characters, and the spaces
and punctuation between words are tokens too. "be cuz" is three tokens and
only matches that exact spelling.

# Usage

Correct the first tab-separated field of every line read from stdin:

	wordfix fix rules.tsv < input.tsv

Correct the third comma-separated field of two files with the sliding window
strategy:

	wordfix fix rules.tsv a.csv b.csv -d , -f 3 -m window

Serve corrections over MessagePack on stdin/stdout:

	wordfix serve rules.tsv

Browse a rule table, or list rules whose corrections other rules rewrite again:

	wordfix rules rules.tsv --prefix "be "
	wordfix rules rules.tsv --unstable

Try rules interactively:

	wordfix try rules.tsv

# Strategies

The longest strategy (the default) scans left to right and replaces the
longest rule matching at each position. The window strategy tries the widest
window of tokens first and shrinks it until a complete rule matches.

# Configuration

Defaults for all commands come from a TOML file, created with
"wordfix config init":

	[fix]
	mode = "longest"
	delimiter = "\t"
	field = 1
	normalize = "none"

	[rules]
	path = ""

	[server]
	max_text_bytes = 1048576

Flags override the file. When [rules] path is set, commands other than fix
may omit the rule file argument.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout:

	{"id": "req1", "t": "i am gonna go"}
	{"id": "req1", "t": "i am will go", "c": true, "tm": 9}

Sending SIGHUP, or a {"a": "reload"} request, reloads the rule file.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordfix"
	gh      = "https://github.com/bastiangx/wordfix"
)

// sigContext cancels the returned context on interrupt or termination.
func sigContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	ctx, stop := sigContext()
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
