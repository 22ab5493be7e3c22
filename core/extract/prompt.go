package extract

// BuildPrompt returns the instruction asking the model to turn raw into a
// {"user", "action", "amount"} JSON object. raw is embedded verbatim between
// double quotes; it is neither validated nor escaped.
func BuildPrompt(raw string) string {
	return `分析以下字符串并转化为JSON。
要求格式：{"user": "姓名", "action": "动作", "amount": "数值"}
注意：只返回JSON，不要解释。

待处理字符串："` + raw + `"`
}
