package setup

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// PromptSSID asks for the network name, offering the default.
func PromptSSID(def string) (string, error) {
	var ssid string
	prompt := &survey.Input{
		Message: "Access point name (SSID):",
		Default: def,
	}
	if err := survey.AskOne(prompt, &ssid, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return ssid, nil
}

// PromptPassphrase keeps asking until the WPA2 length constraint holds; an
// out-of-range answer is never accepted.
func PromptPassphrase() (string, error) {
	return promptPassphraseWith(askPassword)
}

func promptPassphraseWith(ask func(message string) (string, error)) (string, error) {
	message := "WPA2 passphrase (8-63 characters):"
	for {
		pass, err := ask(message)
		if err != nil {
			return "", err
		}
		if n := len(pass); n >= 8 && n <= 63 {
			return pass, nil
		}
		message = fmt.Sprintf("Passphrase must be 8-63 characters (got %d), try again:", len(pass))
	}
}

func askPassword(message string) (string, error) {
	var pass string
	err := survey.AskOne(&survey.Password{Message: message}, &pass)
	return pass, err
}
