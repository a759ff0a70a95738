package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"amzlens/internal/cliclient"
	"amzlens/internal/config"
)

const Prompt = "amzlens> "

// App 应用程序主结构
type App struct {
	client   *cliclient.Client
	registry *cliclient.CommandRegistry
}

// NewApp 创建新的应用程序实例
func NewApp(serverURL string) *App {
	client := cliclient.NewClient(serverURL)
	registry := cliclient.NewCommandRegistry()

	app := &App{
		client:   client,
		registry: registry,
	}

	app.registerCommands()

	return app
}

// registerCommands 注册所有命令
func (a *App) registerCommands() {
	commands := []cliclient.Command{
		cliclient.NewSearchCommand(a.client),
		cliclient.NewSnapshotsCommand(a.client),
		cliclient.NewAccountCommand(a.client),
		cliclient.NewHelpCommand(a.registry),
		cliclient.NewExitCommand(),
	}

	for _, cmd := range commands {
		if err := a.registry.Register(cmd); err != nil {
			fmt.Printf("警告: 注册 %s 命令失败: %v\n", cmd.Name(), err)
		}
	}
}

// parseCommand 解析命令行输入
func parseCommand(line string) (string, []string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}

	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	return command, args
}

// runInteractive 运行交互式模式
func (a *App) runInteractive() {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("amzlens Client - Amazon 竞品分析命令行客户端")
	fmt.Printf("服务器: %s\n", a.client.GetServerURL())
	fmt.Println("输入 'help' 查看帮助，输入 'exit' 或 'quit' 退出")
	fmt.Println()

	ctx := context.Background()

	for {
		fmt.Print(Prompt)

		if !scanner.Scan() {
			break
		}

		commandName, args := parseCommand(scanner.Text())
		if commandName == "" {
			continue
		}

		cmd, ok := a.registry.Get(commandName)
		if !ok {
			fmt.Printf("未知命令: %s\n", commandName)
			fmt.Println("输入 'help' 查看帮助")
			continue
		}

		if err := cmd.Execute(ctx, args); err != nil {
			fmt.Printf("错误: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Printf("读取输入时出错: %v\n", err)
	}
}

// runCommand 运行单个命令（非交互式模式）
func (a *App) runCommand(commandName string, args []string) error {
	cmd, ok := a.registry.Get(commandName)
	if !ok {
		return fmt.Errorf("未知命令: %s\n输入 'amzlens-cli help' 查看帮助", commandName)
	}

	return cmd.Execute(context.Background(), args)
}

// getServerURL 获取服务器 URL
func getServerURL() string {
	// 从环境变量获取
	serverURL := os.Getenv("AMZLENS_SERVER_URL")
	if serverURL != "" {
		return serverURL
	}

	// 从配置文件读取
	cfg, err := config.Load("")
	if err == nil && cfg.Server.Enabled {
		return fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	// 使用默认值
	return cliclient.DefaultServerURL
}

func main() {
	serverURL := getServerURL()
	app := NewApp(serverURL)

	// 检查命令行参数（非交互式模式）
	if len(os.Args) > 1 {
		commandName := strings.ToLower(os.Args[1])
		args := os.Args[2:]

		if commandName == "help" || commandName == "h" || commandName == "--help" || commandName == "-h" {
			if len(args) > 0 {
				fmt.Println(app.registry.HelpForCommand(args[0]))
			} else {
				fmt.Println(app.registry.Help())
			}
			return
		}

		if err := app.runCommand(commandName, args); err != nil {
			fmt.Printf("错误: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// 交互式模式
	app.runInteractive()
}
