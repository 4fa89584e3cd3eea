// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// RenderSystemPrompt renders the analysis instructions given to the
// model, including the strict-JSON response contract.
func RenderSystemPrompt() (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/system.tmpl")
	if err != nil {
		return "", fmt.Errorf("parsing system template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return "", fmt.Errorf("executing system template: %w", err)
	}

	return buf.String(), nil
}

// BuildMessages assembles the Bedrock message array from the system
// prompt, repository label, rendered directory tree, and rendered file
// context.
func BuildMessages(systemPrompt, repoLabel, directoryTree, fileContext string) ([]brtypes.SystemContentBlock, []brtypes.Message) {
	system := []brtypes.SystemContentBlock{
		&brtypes.SystemContentBlockMemberText{Value: systemPrompt},
	}

	prompt := fmt.Sprintf(`Repository: %s

## Directory Structure
`+"```"+`
%s
`+"```"+`

## File Contents
%s

Analyze the above repository and return the JSON summary.`, repoLabel, directoryTree, fileContext)

	messages := []brtypes.Message{userMessage(prompt)}
	return system, messages
}

// userMessage creates a user message with text content.
func userMessage(text string) brtypes.Message {
	return brtypes.Message{
		Role: brtypes.ConversationRoleUser,
		Content: []brtypes.ContentBlock{
			&brtypes.ContentBlockMemberText{Value: text},
		},
	}
}
