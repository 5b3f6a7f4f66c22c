package discord

import "github.com/bwmarrin/discordgo"

// optionIndex maps option name to its interaction data
type optionIndex map[string]*discordgo.ApplicationCommandInteractionDataOption

// optionMap indexes a subcommand's options by name
func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) optionIndex {
	m := make(optionIndex, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}
