package domain

// Имитируемые действия. Сейчас их исполняет симулятор задержки,
// потом на их место встанут реальные вызовы API.
const (
	ActionAgentToggle  = "agent.toggle"
	ActionSignupSubmit = "signup.submit"
	ActionSettingsSave = "settings.save"
)
